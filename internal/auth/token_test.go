package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenIssuer(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		accessExpiry   time.Duration
		expectedSecret string
	}{
		{
			name:           "standard initialization",
			secret:         "test-secret-key",
			accessExpiry:   1 * time.Hour,
			expectedSecret: "test-secret-key",
		},
		{
			name:           "short expiry",
			secret:         "short-secret",
			accessExpiry:   1 * time.Minute,
			expectedSecret: "short-secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ti := NewTokenIssuer(tt.secret, tt.accessExpiry)

			assert.NotNil(t, ti)
			assert.Equal(t, tt.expectedSecret, ti.secret)
			assert.Equal(t, tt.accessExpiry, ti.accessTokenExpiry)
		})
	}
}

func TestTokenIssuer_Generate(t *testing.T) {
	ti := NewTokenIssuer("b8a3c2267dc85f855dea9b46b452bf20", 1*time.Hour)

	t.Run("success with standard userID", func(t *testing.T) {
		token, err := ti.Generate(123)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		// JWT has three dot-separated segments
		assert.Len(t, strings.Split(token, "."), 3)
	})

	t.Run("userID zero", func(t *testing.T) {
		token, err := ti.Generate(0)
		require.NoError(t, err)

		userID, err := ti.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, 0, userID)
	})

	t.Run("round trip preserves userID", func(t *testing.T) {
		token, err := ti.Generate(42)
		require.NoError(t, err)

		userID, err := ti.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, 42, userID)
	})
}

func TestTokenIssuer_Validate(t *testing.T) {
	secret := "test-secret"
	ti := NewTokenIssuer(secret, 1*time.Hour)

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := ti.Validate("not-a-token")
		assert.Error(t, err)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewTokenIssuer("another-secret", 1*time.Hour)
		token, err := other.Generate(1)
		require.NoError(t, err)

		_, err = ti.Validate(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewTokenIssuer(secret, -1*time.Minute)
		token, err := expired.Generate(1)
		require.NoError(t, err)

		_, err = ti.Validate(token)
		assert.Error(t, err)
	})

	t.Run("rejects token without access type", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user_id": 1,
			"exp":     time.Now().Add(time.Hour).Unix(),
			"iat":     time.Now().Unix(),
			"type":    "refresh",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = ti.Validate(tokenString)
		assert.Error(t, err)
	})

	t.Run("rejects token without user_id", func(t *testing.T) {
		claims := jwt.MapClaims{
			"exp":  time.Now().Add(time.Hour).Unix(),
			"iat":  time.Now().Unix(),
			"type": "access",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = ti.Validate(tokenString)
		assert.Error(t, err)
	})
}
