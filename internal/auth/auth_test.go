package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func newTestSigner(t *testing.T) *Signer {
	t.Helper()

	s, err := NewSigner(testSecret, 24*time.Hour)
	require.NoError(t, err)

	return s
}

func TestNewSigner_MissingSecret(t *testing.T) {
	_, err := NewSigner("", time.Hour)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "secret not set")
}

func TestGenerateJWT_Success(t *testing.T) {
	s := newTestSigner(t)

	token, err := s.GenerateJWT("user-123", "alice", false)

	require.NoError(t, err)
	assert.True(t, len(token) > 50, "JWT should be reasonably long")
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")
}

func TestValidateJWT_ValidToken(t *testing.T) {
	s := newTestSigner(t)

	token, err := s.GenerateJWT("user-123", "alice", true)
	require.NoError(t, err)

	claims, err := s.ValidateJWT(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	s := newTestSigner(t)

	claims := Claims{
		UserID:   "user-123",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = s.ValidateJWT(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken, "expired token should be rejected")
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := newTestSigner(t).GenerateJWT("user-123", "alice", false)
	require.NoError(t, err)

	other, err := NewSigner("different-secret-key", time.Hour)
	require.NoError(t, err)

	_, err = other.ValidateJWT(token)

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateJWT_AlgorithmConfusionAttack(t *testing.T) {
	s := newTestSigner(t)

	claims := Claims{
		UserID: "attacker",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType) //nolint:errcheck // test code

	_, err := s.ValidateJWT(tokenString)
	assert.Error(t, err, "token with 'none' algorithm should be rejected")
}

func TestValidateJWT_MalformedToken(t *testing.T) {
	s := newTestSigner(t)

	for _, token := range []string{"", "not.a.jwt", "only.two", "<script>alert('xss')</script>"} {
		_, err := s.ValidateJWT(token)
		assert.Error(t, err, "malformed token '%s' should be rejected", token)
	}
}

func TestJWT_TokenExpiration(t *testing.T) {
	s, err := NewSigner(testSecret, 2*time.Hour)
	require.NoError(t, err)

	token, err := s.GenerateJWT("user-123", "alice", false)
	require.NoError(t, err)

	claims, err := s.ValidateJWT(token)
	require.NoError(t, err)

	diff := claims.ExpiresAt.Time.Sub(time.Now().Add(2 * time.Hour)).Abs()
	assert.Less(t, diff, 5*time.Second, "expiration should follow the configured TTL")
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestSigner(t)

	token, err := s.GenerateJWT("user-123", "alice", false)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", s.AuthMiddleware(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.String(http.StatusOK, userID+":"+c.GetString(ContextUsername))
	})
	router.GET("/admin", s.AuthMiddleware(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic abc", http.StatusUnauthorized},
		{"bad token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "/me", "Bearer " + token, http.StatusOK},
		{"non admin", "/admin", "Bearer " + token, http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "user-123:alice", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestSigner(t)

	router := gin.New()
	router.GET("/", s.OptionalAuthMiddleware(), func(c *gin.Context) {
		_, ok := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}
