// Package auth verifies identity-provider ID tokens locally against the
// provider's published JWKS. The rest of the system only ever sees the
// verified subject claim, an opaque user id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Firebase ID tokens are signed with rotating RSA keys published at a fixed
// JWKS endpoint.
const defaultJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// Verifier checks ID tokens for a single Firebase project.
type Verifier struct {
	projectID string
	issuer    string
	jwks      *jwksCache
}

var (
	defaultVerifier *Verifier
	initOnce        sync.Once
)

// Init sets up the process-wide verifier before any request handling
// begins. Safe to call again on a host reload; only the first call takes
// effect.
func Init(projectID string) *Verifier {
	initOnce.Do(func() {
		defaultVerifier = New(projectID, nil)
	})
	return defaultVerifier
}

// New builds a verifier for the given project. httpClient may be nil.
func New(projectID string, httpClient *http.Client) *Verifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Verifier{
		projectID: projectID,
		issuer:    "https://securetoken.google.com/" + projectID,
		jwks:      newJWKSCache(httpClient, defaultJWKSURL),
	}
}

// VerifyIDToken checks the token's signature, expiry, issuer and audience,
// and returns the subject claim.
func (v *Verifier) VerifyIDToken(ctx context.Context, tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid header")
		}
		return v.jwks.getKey(ctx, kid)
	})
	if err != nil {
		return "", fmt.Errorf("invalid id token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid id token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("id token missing sub claim")
	}
	return sub, nil
}
