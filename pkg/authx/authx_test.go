package authx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceWithKey(t *testing.T, key string) *Service {
	t.Helper()

	hash, err := HashAPIKey(key)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.APIKeyHashes = []string{hash}
	return NewService(cfg)
}

func TestVerifyAPIKey(t *testing.T) {
	svc := serviceWithKey(t, "good-key")

	assert.True(t, svc.VerifyAPIKey("good-key"))
	assert.False(t, svc.VerifyAPIKey("bad-key"))
	assert.False(t, svc.VerifyAPIKey(""))
}

func TestVerifyAPIKeyCachesOnlySuccesses(t *testing.T) {
	svc := serviceWithKey(t, "good-key")

	for i := 0; i < 50; i++ {
		assert.False(t, svc.VerifyAPIKey(fmt.Sprintf("guess-%d", i)))
	}
	assert.Empty(t, svc.verified)

	assert.True(t, svc.VerifyAPIKey("good-key"))
	assert.Len(t, svc.verified, 1)

	// Second check of the same key is served from the cache.
	assert.True(t, svc.VerifyAPIKey("good-key"))
	assert.Len(t, svc.verified, 1)
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JWTSecret = "test-secret"
	svc := NewService(cfg)

	token, err := svc.IssueToken("worker-1")
	require.NoError(t, err)

	subject, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "worker-1", subject)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JWTSecret = "secret-a"
	issuer := NewService(cfg)

	token, err := issuer.IssueToken("worker-1")
	require.NoError(t, err)

	cfg.JWTSecret = "secret-b"
	verifier := NewService(cfg)
	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}
