package auth

import (
	"testing"
	"time"

	"refhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Setup("test-secret", 15*time.Minute)
	m.Run()
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("super_password123")
	require.NoError(t, err)
	assert.NotEqual(t, "super_password123", hash)

	assert.True(t, CheckPasswordHash("super_password123", hash))
	assert.False(t, CheckPasswordHash("wrong_password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(""))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "employee")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRefreshToken(t *testing.T) {
	first, err := GenerateRefreshToken()
	require.NoError(t, err)
	second, err := GenerateRefreshToken()
	require.NoError(t, err)

	// 32 байта в hex
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

func TestHashToken_Deterministic(t *testing.T) {
	raw, err := GenerateRefreshToken()
	require.NoError(t, err)

	// Детерминированность - основа поиска сессии по хешу
	assert.Equal(t, HashToken(raw), HashToken(raw))
	assert.NotEqual(t, raw, HashToken(raw))
	assert.NotEqual(t, HashToken(raw), HashToken(raw+"x"))
}

func TestActorFromClaims(t *testing.T) {
	actor := ActorFromClaims(&Claims{UserID: "user-1", Role: "admin"})
	assert.Equal(t, "user-1", actor.UserID)
	assert.Equal(t, models.UserRoleAdmin, actor.Role)
	assert.True(t, actor.IsAdmin())

	actor = ActorFromClaims(&Claims{UserID: "user-2", Role: "job_seeker"})
	assert.False(t, actor.IsAdmin())
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(models.UserRoleJobSeeker))
	assert.NoError(t, ValidateRole(models.UserRoleEmployee))

	// Админов через публичную регистрацию не создают
	assert.Error(t, ValidateRole(models.UserRoleAdmin))
	assert.Error(t, ValidateRole(models.UserRole("manager")))
}
