package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/codereps/internal/logger"
)

// TokenVerifier validates a bearer token and returns the verified user id.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (string, error)
}

const userIDKey = "user_id"

// RequireAuth rejects requests without a valid bearer token and stashes the
// verified user id in the request context.
func RequireAuth(verifier TokenVerifier, log *logger.Logger) gin.HandlerFunc {
	authLog := log.With("component", "auth")
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized",
				errors.New("missing or invalid Authorization header"))
			return
		}

		uid, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			authLog.Warn("token verification failed", "error", err)
			respondError(c, http.StatusUnauthorized, "unauthorized",
				errors.New("invalid or expired token"))
			return
		}

		c.Set(userIDKey, uid)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
