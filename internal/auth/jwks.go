package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// jwksCache fetches and caches the provider's RSA signing keys. Keys are
// refreshed when the cache goes stale or an unknown kid shows up; a failed
// refresh falls back to the cached key when one exists.
type jwksCache struct {
	httpClient *http.Client
	url        string

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
	ttl       time.Duration
}

func newJWKSCache(httpClient *http.Client, url string) *jwksCache {
	return &jwksCache{
		httpClient: httpClient,
		url:        url,
		keys:       map[string]*rsa.PublicKey{},
		ttl:        6 * time.Hour,
	}
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (j *jwksCache) getKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	j.mu.RLock()
	key := j.keys[kid]
	stale := time.Since(j.fetchedAt) > j.ttl
	j.mu.RUnlock()

	if key != nil && !stale {
		return key, nil
	}

	if err := j.refresh(ctx); err != nil {
		j.mu.RLock()
		key = j.keys[kid]
		j.mu.RUnlock()
		if key != nil {
			return key, nil
		}
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	key = j.keys[kid]
	if key == nil {
		return nil, fmt.Errorf("kid not found in jwks: %s", kid)
	}
	return key, nil
}

func (j *jwksCache) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.url, nil)
	if err != nil {
		return err
	}
	res, err := j.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("jwks fetch failed: %s", res.Status)
	}

	var set jwkSet
	if err := json.NewDecoder(res.Body).Decode(&set); err != nil {
		return err
	}

	next := map[string]*rsa.PublicKey{}
	for _, k := range set.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaFromModExp(k.N, k.E)
		if err != nil {
			continue
		}
		next[k.Kid] = pub
	}
	if len(next) == 0 {
		return fmt.Errorf("jwks contained no usable keys")
	}

	j.mu.Lock()
	j.keys = next
	j.fetchedAt = time.Now()
	j.mu.Unlock()
	return nil
}

func rsaFromModExp(nB64, eB64 string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eb {
		e = e<<8 + int(b)
	}
	if e == 0 {
		return nil, fmt.Errorf("invalid exponent")
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
