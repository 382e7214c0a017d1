package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("athlete-1", []string{"USER"}, "test-secret")
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "athlete-1", claims.UserID)
	assert.Equal(t, []string{"USER"}, claims.Roles)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("athlete-1", nil, "test-secret")
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken("athlete-1", nil, "test-secret")
	require.NoError(t, err)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], sig)

	_, err = ExtractSignature("not-a-jwt")
	assert.Error(t, err)
}
