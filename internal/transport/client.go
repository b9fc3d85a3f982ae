// Package transport is the HTTP client used by the services. A request that
// fails comes back as a normalized *errors.Error: NETWORK when no response
// was received, REMOTE when the server answered with an error status. A
// response body of the wrong shape is a *validate.Error.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/tanker327/react-project-structure-best-practices/internal/config"
	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/logger"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
)

const (
	HeaderRequestID = "X-Request-ID"

	// cap on error bodies read back from the server
	maxErrorBody = 64 << 10
)

// manages HTTP requests to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	tokens     *TokenHolder
}

type Option func(*Client)

// replaces the underlying http.Client (tests use httptest clients)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// creates a new REST client; a nil tokens gets a fresh holder
func NewClient(cfg *config.ClientConfig, tokens *TokenHolder, opts ...Option) *Client {
	if tokens == nil {
		tokens = NewTokenHolder()
	}

	c := &Client{
		baseURL: cfg.APIBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		tokens: tokens,
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Tokens() *TokenHolder {
	return c.tokens
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperrors.Network(method, url, fmt.Errorf("rate limiter: %w", err))
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.decorate(req, body != nil)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Network(method, url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	logger.FromContext(ctx).Debug("api request",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(HeaderRequestID),
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return remoteError(resp, method, url)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return decodeError(err)
	}

	return nil
}

// a body that does not match the expected shape is a validation failure
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		if path == "" {
			path = "body"
		}

		return validate.NewError(apperrors.Violation{
			Path:    path,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		})
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return validate.NewError(apperrors.Violation{
			Path:    "body",
			Message: "malformed JSON: " + err.Error(),
		})
	}

	return fmt.Errorf("failed to parse response: %w", err)
}

// request interceptor: content negotiation, session token and request id
func (c *Client) decorate(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth := c.tokens.Authorization(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	req.Header.Set(HeaderRequestID, uuid.NewString())
}

func remoteError(resp *http.Response, method, url string) error {
	var errResp apperrors.ErrorResponse

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(raw) > 0 {
		// non-JSON bodies fall back to the status-only message
		_ = json.Unmarshal(raw, &errResp)
	}

	return apperrors.Remote(resp.StatusCode, method, url, errResp)
}
