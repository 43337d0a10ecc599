package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/tarefas-api/internal/config"
)

const testSecret = "test-secret-key-thats-long-enough-32"

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 1440,
		BcryptCost:           10,
	})
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	return impl
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "short",
			TokenLifetimeMinutes: 1440,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("accepts valid config", func(t *testing.T) {
		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 1440,
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestValidateToken_Failures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("expired token", func(t *testing.T) {
		svc := newTestService(t)

		// Issue in the past, validate at the present.
		svc.timeFunc = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		token, err := svc.GenerateToken(ctx, userID, "a@x.com")
		require.NoError(t, err)

		svc.timeFunc = time.Now
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		svc := newTestService(t)

		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "another-secret-key-thats-long-enough",
			TokenLifetimeMinutes: 1440,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, userID, "a@x.com")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.ValidateToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		svc := newTestService(t)

		// alg=none tokens must never validate.
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("all failures collapse to the same error", func(t *testing.T) {
		svc := newTestService(t)

		svc.timeFunc = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		expired, err := svc.GenerateToken(ctx, userID, "a@x.com")
		require.NoError(t, err)
		svc.timeFunc = time.Now

		_, expiredErr := svc.ValidateToken(ctx, expired)
		_, malformedErr := svc.ValidateToken(ctx, "garbage")

		// Callers cannot distinguish why a token was rejected.
		assert.Equal(t, expiredErr, malformedErr)
	})
}
