package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhaven/nursery-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Username: "alice",
		Role:     domain.RoleCustomer,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	other := NewTokenManager("different-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}
