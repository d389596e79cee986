package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kusina-backend/pkg/auth"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, role string, expiry time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "user-1",
		"email": "maria@example.ph",
		"exp":   time.Now().Add(expiry).Unix(),
		"app_metadata": map[string]any{
			"dashboard_role": role,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	var got Actor
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(auth.NewVerifier(testSecret), zap.NewNop())(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meals", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, auth.RoleDietitian, time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, "maria@example.ph", got.Email)
	assert.Equal(t, auth.RoleDietitian, got.Role)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(auth.NewVerifier(testSecret), zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meals", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	handler := Authenticate(auth.NewVerifier(testSecret), zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meals", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, auth.RoleAdmin, -time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNilVerifierAdmitsDevelopmentAdmin(t *testing.T) {
	var got Actor
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ActorFromContext(r.Context())
	})
	handler := Authenticate(nil, zap.NewNop())(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meals", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, auth.RoleAdmin, got.Role)
}

func TestRequireWriterBlocksViewer(t *testing.T) {
	handler := Authenticate(auth.NewVerifier(testSecret), zap.NewNop())(RequireWriter(okHandler()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/meals", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, auth.RoleViewer, time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireReviewerBlocksDietitian(t *testing.T) {
	handler := Authenticate(auth.NewVerifier(testSecret), zap.NewNop())(RequireReviewer(okHandler()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/verifications/ver-1/review", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, auth.RoleDietitian, time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimitReturns429WhenExhausted(t *testing.T) {
	limiter := auth.NewTokenBucketLimiter(2, time.Hour)
	handler := RateLimit(limiter)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
