package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	service := NewJWTService("test-secret", 60)

	t.Run("generate and verify round trip", func(t *testing.T) {
		token, err := service.Generate(42, "yamada")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "yamada", claims.Username)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := service.Generate(42, "yamada")
		require.NoError(t, err)

		other := NewJWTService("different-secret", 60)
		_, err = other.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewJWTService("test-secret", -1)
		token, err := expired.Generate(42, "yamada")
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := service.Verify("not.a.token")
		assert.Error(t, err)
	})

	t.Run("access expiry is exposed for the cookie", func(t *testing.T) {
		assert.Equal(t, 60, service.AccessExpMinutes())
	})
}
