package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing",
		Expiration: 60,
		Issuer:     "triptracker-test",
	}
}

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name        string
		subject     string
		role        models.Role
		expectError bool
	}{
		{name: "driver", subject: "driver-1", role: models.RoleDriver},
		{name: "customer", subject: "customer-1", role: models.RoleCustomer},
		{name: "empty subject", subject: "", role: models.RoleCustomer},
		{name: "unknown role", subject: "admin-1", role: "admin", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now()
			token, expiresAt, err := GenerateToken(tt.subject, tt.role, getTestConfig(), now)

			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidRole)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, now.Add(time.Hour).Unix(), expiresAt)
		})
	}
}

func TestValidateToken_RoundTrip(t *testing.T) {
	cfg := getTestConfig()
	token, _, err := GenerateToken("driver-1", models.RoleDriver, cfg, time.Now())
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg)

	require.NoError(t, err)
	assert.Equal(t, "driver-1", claims.Subject)
	assert.Equal(t, models.RoleDriver, claims.Role)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}

func TestValidateToken_Rejects(t *testing.T) {
	cfg := getTestConfig()

	expired, _, err := GenerateToken("driver-1", models.RoleDriver, cfg, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	otherSecret := cfg
	otherSecret.Secret = "another-secret"
	forged, _, err := GenerateToken("driver-1", models.RoleDriver, otherSecret, time.Now())
	require.NoError(t, err)

	otherIssuer := cfg
	otherIssuer.Issuer = "someone-else"
	foreign, _, err := GenerateToken("driver-1", models.RoleDriver, otherIssuer, time.Now())
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: models.RoleDriver})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": forged,
		"wrong issuer": foreign,
		"unsigned":     unsigned,
		"garbage":      "not.a.token",
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := ValidateToken(token, cfg)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
