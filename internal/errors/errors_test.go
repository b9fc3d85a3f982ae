package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name    string
		handler gin.HandlerFunc
		status  int
		code    string
		message string
	}{
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized, CodeUnauthorized, "authentication required"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "admins only") }, http.StatusForbidden, CodeForbidden, "admins only"},
		{"not found", func(c *gin.Context) { NotFound(c, "product") }, http.StatusNotFound, CodeNotFound, "product not found"},
		{"bad request", func(c *gin.Context) { BadRequest(c, "", nil) }, http.StatusBadRequest, CodeBadRequest, "invalid request"},
		{"conflict", func(c *gin.Context) { Conflict(c, "") }, http.StatusConflict, CodeConflict, "resource conflict"},
		{"too many", func(c *gin.Context) { TooManyRequests(c, "") }, http.StatusTooManyRequests, CodeTooManyRequests, "too many requests"},
		{"internal", func(c *gin.Context) { InternalError(c, "", errors.New("db down")) }, http.StatusInternalServerError, CodeServerError, "an error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(tc.handler)

			assert.Equal(t, tc.status, w.Code)
			resp := decode(t, w)
			assert.Equal(t, tc.code, resp.Error)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestValidationError_WithViolations(t *testing.T) {
	w := serve(func(c *gin.Context) {
		ValidationError(c, fieldErr{violations: []Violation{{Path: "price", Message: "expected positive number"}}})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, CodeValidationError, resp.Error)
	assert.Equal(t, []Violation{{Path: "price", Message: "expected positive number"}}, resp.Violations)
}

func TestValidationError_PlainError(t *testing.T) {
	w := serve(func(c *gin.Context) { ValidationError(c, errors.New("unexpected EOF")) })

	resp := decode(t, w)
	assert.Equal(t, "request validation failed", resp.Message)
	assert.Equal(t, "unexpected EOF", resp.Details)
}

func TestSanitizeError_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	assert.Equal(t, "connection error occurred", sanitizeError(errors.New("dial tcp: connection refused")))
	assert.Equal(t, "resource not found", sanitizeError(errors.New("product not found")))
	assert.Equal(t, "an error occurred", sanitizeError(errors.New("pq: relation missing")))
}

func TestRemote(t *testing.T) {
	e := Remote(http.StatusNotFound, http.MethodGet, "http://api/products/9", ErrorResponse{
		Error:   CodeNotFound,
		Message: "product not found",
	})

	assert.Equal(t, KindRemote, e.Kind())
	assert.Equal(t, http.StatusNotFound, e.StatusCode())
	assert.Equal(t, "GET http://api/products/9: product not found", e.Message())
	assert.Equal(t, CodeNotFound, e.Context()[KeyRemoteCode])

	bare := Remote(http.StatusBadGateway, http.MethodPost, "/x", ErrorResponse{})
	assert.Equal(t, "POST /x: request failed with status 502", bare.Message())
	assert.NotContains(t, bare.Context(), KeyRemoteCode)
}

func TestNetwork(t *testing.T) {
	tests := []struct {
		cause    error
		category string
	}{
		{errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), CategoryConnection},
		{errors.New("i/o timeout"), CategoryTimeout},
		{errors.New("weird"), CategoryUnknown},
	}

	for _, tc := range tests {
		e := Network(http.MethodGet, "/products", tc.cause)

		assert.Equal(t, KindNetwork, e.Kind())
		assert.Equal(t, 0, e.StatusCode())
		assert.Equal(t, tc.category, e.Context()[KeyReason])
		assert.ErrorIs(t, e, tc.cause)
	}
}

func TestLogValue_RedactedArguments(t *testing.T) {
	e := Normalize(Op{Entity: "AuthService", Method: "login"}, errors.New("timeout"),
		map[string]any{"username": "a", "password": "secret123"})

	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Error("login failed", "error", e)

	out := buf.String()
	assert.Contains(t, out, `"kind":"UNKNOWN"`)
	assert.Contains(t, out, `"operation":"AuthService.login"`)
	assert.Contains(t, out, Redacted)
	assert.NotContains(t, out, "secret123")
}
