package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/shop/products"
	"github.com/tanker327/react-project-structure-best-practices/shop/seed"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

type testAPI struct {
	router *gin.Engine
	deps   Deps
}

func newTestAPI(t *testing.T, loginRate string) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer, err := auth.NewSigner("test-secret", time.Hour)
	require.NoError(t, err)

	deps := Deps{
		Products:       products.NewRepository(),
		Users:          users.NewRepository(),
		Signer:         signer,
		LoginRateLimit: loginRate,
	}

	f, err := seed.Load("")
	require.NoError(t, err)
	require.NoError(t, f.Apply(context.Background(), deps.Products, deps.Users))

	router, err := NewRouter(deps)
	require.NoError(t, err)

	return &testAPI{router: router, deps: deps}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	return w
}

func (a *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp.Token
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errors.ErrorResponse {
	t.Helper()

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t, "")

	w := a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get(headerRequestID))

	w = a.do(t, http.MethodGet, "/api/ping", "", nil)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestProducts_ListAndGet(t *testing.T) {
	a := newTestAPI(t, "")

	w := a.do(t, http.MethodGet, "/api/products?category=peripherals&limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Products   []products.Product `json:"products"`
		Pagination struct {
			Total   int  `json:"total"`
			HasMore bool `json:"has_more"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Products, 1)
	assert.Equal(t, 2, list.Pagination.Total)
	assert.True(t, list.Pagination.HasMore)

	w = a.do(t, http.MethodGet, "/api/products/"+list.Products[0].ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errors.CodeNotFound, decodeError(t, w).Error)
}

func TestProducts_WritesRequireAuth(t *testing.T) {
	a := newTestAPI(t, "")
	body := map[string]any{"name": "Pen", "price": 1.5, "category": "office"}

	w := a.do(t, http.MethodPost, "/api/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := a.login(t, "demo", "demo12345")
	w = a.do(t, http.MethodPost, "/api/products", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created products.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = a.do(t, http.MethodPost, "/api/products", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodPut, "/api/products/"+created.ID, token, map[string]any{"stock": 7})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock":7`)

	w = a.do(t, http.MethodDelete, "/api/products/"+created.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "delete is admin only")

	admin := a.login(t, "admin", "admin12345")
	w = a.do(t, http.MethodDelete, "/api/products/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProducts_ValidationViolations(t *testing.T) {
	a := newTestAPI(t, "")
	token := a.login(t, "demo", "demo12345")

	w := a.do(t, http.MethodPost, "/api/products", token, map[string]any{"name": "Pen", "price": -1, "category": "office"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, errors.CodeValidationError, resp.Error)
	assert.Equal(t, []errors.Violation{{Path: "price", Message: "expected positive number"}}, resp.Violations)
}

func TestUsers_Access(t *testing.T) {
	a := newTestAPI(t, "")

	w := a.do(t, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	demo := a.login(t, "demo", "demo12345")
	w = a.do(t, http.MethodGet, "/api/users", demo, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = a.do(t, http.MethodPost, "/api/users", demo, map[string]any{
		"username": "carol", "email": "carol@example.com", "password": "carolpass",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := a.login(t, "admin", "admin12345")
	w = a.do(t, http.MethodPost, "/api/users", admin, map[string]any{
		"username": "carol", "email": "not-an-email", "password": "carolpass",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email", decodeError(t, w).Violations[0].Path)

	w = a.do(t, http.MethodPost, "/api/users", admin, map[string]any{
		"username": "carol", "email": "carol@example.com", "password": "carolpass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var carol users.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &carol))

	w = a.do(t, http.MethodPut, "/api/users/"+carol.ID, demo, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code, "cannot edit other users")

	carolToken := a.login(t, "carol", "carolpass")
	w = a.do(t, http.MethodPut, "/api/users/"+carol.ID, carolToken, map[string]any{"is_admin": true})
	assert.Equal(t, http.StatusForbidden, w.Code, "cannot self-promote")

	w = a.do(t, http.MethodPut, "/api/users/"+carol.ID, carolToken, map[string]any{"name": "Carol"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodDelete, "/api/users/"+carol.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuth_LoginLogoutMe(t *testing.T) {
	a := newTestAPI(t, "")

	w := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "demo", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "demo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := a.login(t, "demo", "demo12345")

	w = a.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"demo"`)

	w = a.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_LoginRateLimited(t *testing.T) {
	a := newTestAPI(t, "2-M")
	creds := map[string]string{"username": "demo", "password": "wrong"}

	for i := 0; i < 2; i++ {
		w := a.do(t, http.MethodPost, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := a.do(t, http.MethodPost, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, errors.CodeTooManyRequests, decodeError(t, w).Error)
}

func TestNewRouter_InvalidRate(t *testing.T) {
	_, err := NewRouter(Deps{LoginRateLimit: "lots"})

	assert.ErrorContains(t, err, "invalid login rate limit")
}

func TestNoRoute(t *testing.T) {
	a := newTestAPI(t, "")

	w := a.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
