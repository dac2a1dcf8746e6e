package auth

import (
	"testing"

	"scale-sync-api-server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckSyncSecret_Plaintext(t *testing.T) {
	cfg := config.SyncConfig{Secret: "topsecret"}

	assert.True(t, CheckSyncSecret("topsecret", cfg))
	assert.False(t, CheckSyncSecret("wrong", cfg))
	assert.False(t, CheckSyncSecret("", cfg))
}

func TestCheckSyncSecret_HashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("topsecret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.SyncConfig{Secret: "something-else", SecretHash: string(hash)}

	assert.True(t, CheckSyncSecret("topsecret", cfg))
	assert.False(t, CheckSyncSecret("something-else", cfg))
}

func TestGenerateAndParseJWT(t *testing.T) {
	require.NoError(t, Init(config.JWTConfig{Secret: "unit-test-secret", Expiration: "1h"}))

	token, err := GenerateJWT("operator")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Role)
}

func TestParseJWT_RejectsGarbage(t *testing.T) {
	require.NoError(t, Init(config.JWTConfig{Secret: "unit-test-secret"}))

	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)
}

func TestInit_RejectsMissingSecret(t *testing.T) {
	assert.Error(t, Init(config.JWTConfig{}))
}

func TestInit_RejectsBadExpiration(t *testing.T) {
	assert.Error(t, Init(config.JWTConfig{Secret: "s", Expiration: "soon"}))
}
