package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
)

func TestAuthService(t *testing.T) {
	t.Run("Issued tokens verify to the participant", func(t *testing.T) {
		// Given: an auth service
		auth := NewAuthService("secret", time.Hour, clockwork.NewFakeClock())

		// When: a token is issued and verified
		token, err := auth.GenerateToken("x")
		require.NoError(t, err)

		participantID, err := auth.VerifyToken(token)

		// Then: the participant comes back
		require.NoError(t, err)
		assert.Equal(t, "x", participantID)
	})

	t.Run("Expired tokens are rejected", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		auth := NewAuthService("secret", time.Hour, clock)

		token, err := auth.GenerateToken("x")
		require.NoError(t, err)

		clock.Advance(2 * time.Hour)

		_, err = auth.VerifyToken(token)

		require.ErrorIs(t, err, apperror.ErrUnauthorized)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Tokens signed with another secret are rejected", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		token, err := NewAuthService("other", time.Hour, clock).GenerateToken("x")
		require.NoError(t, err)

		_, err = NewAuthService("secret", time.Hour, clock).VerifyToken(token)

		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		auth := NewAuthService("secret", time.Hour, clockwork.NewFakeClock())

		_, err := auth.VerifyToken("not-a-token")

		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("Empty participant cannot get a token", func(t *testing.T) {
		auth := NewAuthService("secret", time.Hour, clockwork.NewFakeClock())

		_, err := auth.GenerateToken("")

		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}
