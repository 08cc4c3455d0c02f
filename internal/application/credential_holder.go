package application

import "sync"

// CredentialHolder is the shared "current credential" read by the
// request gateway. It is single-writer (the session service) and
// multi-reader; readers always observe the latest value.
type CredentialHolder struct {
	mu    sync.RWMutex
	token string
}

func NewCredentialHolder() *CredentialHolder {
	return &CredentialHolder{}
}

func (h *CredentialHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *CredentialHolder) Set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

func (h *CredentialHolder) Clear() {
	h.Set("")
}
