package apiclient

import (
	"context"
	"sync"
)

// TokenStore is where the bearer token lives between requests. The
// dashboard backs it with a cookie; the CLI with memory.
type TokenStore interface {
	Token() string
	Clear()
}

type tokensKey struct{}

func ContextWithTokens(ctx context.Context, ts TokenStore) context.Context {
	return context.WithValue(ctx, tokensKey{}, ts)
}

func TokensFromContext(ctx context.Context) TokenStore {
	ts, _ := ctx.Value(tokensKey{}).(TokenStore)
	return ts
}

// MemoryTokens is a TokenStore held in process memory.
type MemoryTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func NewMemoryTokens(token string) *MemoryTokens { return &MemoryTokens{token: token} }

func (m *MemoryTokens) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemoryTokens) Set(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *MemoryTokens) Clear() {
	m.mu.Lock()
	m.token = ""
	m.cleared++
	m.mu.Unlock()
}

// Cleared counts Clear calls.
func (m *MemoryTokens) Cleared() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}
