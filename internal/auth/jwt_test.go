package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "teamhub", 24*time.Hour)

	userID := uuid.New()

	t.Run("generates valid token", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, "alice", "alice@example.com", "User", "Alice Smith")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "User", claims.Role)
		assert.Equal(t, "Alice Smith", claims.FullName)
	})

	t.Run("token contains correct issuer and subject", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, "alice", "alice@example.com", "User", "")
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "teamhub", claims.Issuer)
		assert.Equal(t, userID.String(), claims.Subject)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	userID := uuid.New()

	t.Run("rejects expired token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", "teamhub", 1*time.Millisecond)

		token, err := jwtService.GenerateToken(userID, "alice", "alice@example.com", "User", "")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", "teamhub", 24*time.Hour)
		other := auth.NewJWTService("other-secret", "teamhub", 24*time.Hour)

		token, err := other.GenerateToken(userID, "alice", "alice@example.com", "User", "")
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects token from different issuer", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", "teamhub", 24*time.Hour)
		other := auth.NewJWTService("test-secret", "someone-else", 24*time.Hour)

		token, err := other.GenerateToken(userID, "alice", "alice@example.com", "User", "")
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", "teamhub", 24*time.Hour)
		_, err := jwtService.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, auth.CheckPassword("s3cret-password", hash))
	assert.False(t, auth.CheckPassword("wrong-password", hash))
}
