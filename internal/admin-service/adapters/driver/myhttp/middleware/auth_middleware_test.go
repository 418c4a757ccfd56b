package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, userID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   "admin@example.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, authHeader string, roles ...string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	am := NewAuthMiddleware(testSecret)

	var forwarded *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/pricing", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	am.Wrap(next, roles...).ServeHTTP(rec, req)
	return rec, forwarded
}

func TestWrap_ValidTokenForwardsIdentity(t *testing.T) {
	userID := uuid.NewString()
	token := signToken(t, testSecret, userID, "ADMIN")

	rec, forwarded := runMiddleware(t, "Bearer "+token, "ADMIN")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, forwarded)
	assert.Equal(t, userID, forwarded.Header.Get("X-UserId"))
	assert.Equal(t, "ADMIN", forwarded.Header.Get("X-UserRole"))
}

func TestWrap_MissingToken(t *testing.T) {
	rec, forwarded := runMiddleware(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, forwarded)
}

func TestWrap_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", uuid.NewString(), "ADMIN")

	rec, forwarded := runMiddleware(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, forwarded)
}

func TestWrap_ExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "ADMIN",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec, forwarded := runMiddleware(t, "Bearer "+signed)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, forwarded)
}

func TestWrap_RoleNotAllowed(t *testing.T) {
	token := signToken(t, testSecret, uuid.NewString(), "CUSTOMER")

	rec, forwarded := runMiddleware(t, "Bearer "+token, "ADMIN", "SUPPORT")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, forwarded)
}
