package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyExtractsRole(t *testing.T) {
	v := NewVerifier("secret")
	token := sign(t, "secret", jwt.MapClaims{
		"sub":          "user-1",
		"email":        "nena@example.ph",
		"exp":          time.Now().Add(time.Hour).Unix(),
		"app_metadata": map[string]any{"dashboard_role": RoleAdmin},
	})

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "nena@example.ph", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role())
}

func TestVerifyDefaultsToViewer(t *testing.T) {
	v := NewVerifier("secret")
	token := sign(t, "secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleViewer, claims.Role())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewVerifier("secret")
	token := sign(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	v := NewVerifier("secret")
	token := sign(t, "secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, CanWrite(RoleAdmin))
	assert.True(t, CanWrite(RoleDietitian))
	assert.False(t, CanWrite(RoleViewer))

	assert.True(t, CanReview(RoleAdmin))
	assert.False(t, CanReview(RoleDietitian))
}
