package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyIDToken_Malformed(t *testing.T) {
	v := New("demo-project", nil)

	// Malformed tokens are rejected before any key lookup happens.
	for _, token := range []string{"", "not-a-jwt", "a.b"} {
		_, err := v.VerifyIDToken(context.Background(), token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestInit_OnlyFirstCallTakesEffect(t *testing.T) {
	first := Init("project-a")
	second := Init("project-b")
	assert.Same(t, first, second)
}
