package transport

import "sync"

// TokenHolder keeps the bearer token of the current session. It is safe for
// concurrent use.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

func NewTokenHolder() *TokenHolder {
	return &TokenHolder{}
}

func (h *TokenHolder) Set(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *TokenHolder) Get() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.token
}

func (h *TokenHolder) Clear() {
	h.Set("")
}

// Authorization returns the Authorization header value, or "" without a token.
func (h *TokenHolder) Authorization() string {
	if token := h.Get(); token != "" {
		return "Bearer " + token
	}

	return ""
}
