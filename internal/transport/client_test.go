package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tanker327/react-project-structure-best-practices/internal/config"
	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"))
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.ClientConfig{APIBaseURL: srv.URL, RequestTimeout: 2 * time.Second}
	c := NewClient(cfg, nil, WithHTTPClient(srv.Client()))

	return c, srv
}

func TestTokenHolder(t *testing.T) {
	h := NewTokenHolder()
	assert.Equal(t, "", h.Authorization())

	h.Set("abc")
	assert.Equal(t, "abc", h.Get())
	assert.Equal(t, "Bearer abc", h.Authorization())

	h.Clear()
	assert.Equal(t, "", h.Get())
}

func TestTokenHolder_Concurrent(t *testing.T) {
	h := NewTokenHolder()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); h.Set("t") }()
		go func() { defer wg.Done(); _ = h.Authorization() }()
	}
	wg.Wait()

	assert.Equal(t, "t", h.Get())
}

func TestClient_AttachesHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(HeaderRequestID)
		gotContentType = r.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1"}`))
	}))
	c.Tokens().Set("secret-token")

	var out struct {
		ID string `json:"id"`
	}
	err := c.Post(context.Background(), "/products", map[string]any{"name": "x"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "p1", out.ID)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_RemoteError(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(apperrors.ErrorResponse{
			Error:      apperrors.CodeValidationError,
			Message:    "validation failed",
			Violations: []apperrors.Violation{{Path: "price", Message: "expected positive number"}},
		})
	}))

	err := c.Get(context.Background(), "/products/1", nil)

	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindRemote, e.Kind())
	assert.Equal(t, http.StatusUnprocessableEntity, e.StatusCode())
	assert.Contains(t, e.Message(), "validation failed")

	ctx := e.Context()
	assert.Equal(t, http.MethodGet, ctx[apperrors.KeyHTTPMethod])
	assert.Equal(t, srv.URL+"/products/1", ctx[apperrors.KeyURL])
	assert.Equal(t, apperrors.CodeValidationError, ctx[apperrors.KeyRemoteCode])
	assert.Len(t, e.Violations(), 1)
}

func TestClient_RemoteErrorPlainBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	err := c.Get(context.Background(), "/", nil)

	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, e.StatusCode())
	assert.Contains(t, e.Message(), "request failed with status 502")
}

func TestClient_UnauthorizedClearsToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"invalid or expired token"}`))
	}))
	c.Tokens().Set("stale")

	err := c.Get(context.Background(), "/auth/me", nil)

	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.Equal(t, "", c.Tokens().Get())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(&config.ClientConfig{APIBaseURL: url, RequestTimeout: time.Second}, nil)

	err := c.Get(context.Background(), "/products", nil)

	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNetwork, e.Kind())
	assert.Equal(t, 0, e.StatusCode())
	assert.Equal(t, apperrors.CategoryConnection, e.Context()[apperrors.KeyReason])
}

func TestClient_Canceled(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/products", nil)

	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNetwork, e.Kind())
	assert.Equal(t, apperrors.CategoryCanceled, e.Context()[apperrors.KeyReason])
}

func TestClient_NoContent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	var out map[string]any
	require.NoError(t, c.Delete(context.Background(), "/products/1", &out))
	assert.Nil(t, out)
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.ClientConfig{APIBaseURL: srv.URL, RequestTimeout: time.Second, RateLimit: 0.001, RateBurst: 1}
	c := NewClient(cfg, nil, WithHTTPClient(srv.Client()))

	require.NoError(t, c.Get(context.Background(), "/", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Get(ctx, "/", nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNetwork))
}

func TestClient_MalformedBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		path    string
		message string
	}{
		{"wrong type", `{"id":"p1","price":"free"}`, "price", "expected float64, got string"},
		{"nested wrong type", `{"id":"p1","tags":{"primary":7}}`, "tags.primary", "expected string, got number"},
		{"truncated", `{"id":"p1",`, "body", ""},
		{"not json", `<html>`, "body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))

			var out struct {
				ID    string  `json:"id"`
				Price float64 `json:"price"`
				Tags  struct {
					Primary string `json:"primary"`
				} `json:"tags"`
			}
			err := c.Get(context.Background(), "/products/p1", &out)
			require.Error(t, err)

			var ve *validate.Error
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Violations(), 1)
			assert.Equal(t, tt.path, ve.Violations()[0].Path)
			if tt.message != "" {
				assert.Equal(t, tt.message, ve.Violations()[0].Message)
			}
		})
	}
}
