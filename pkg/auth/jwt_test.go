package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("64f1c0ffee0000000000abcd", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000abcd", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("user-1", "user")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestSessionCookie(t *testing.T) {
	c := SessionCookie("abc123")
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "abc123", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
}

func TestExpiredCookieClearsSession(t *testing.T) {
	c := ExpiredCookie()
	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret99")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret99", hash)

	assert.True(t, CheckPassword(hash, "s3cret99"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
