package revocation

import (
	"context"
	"sync"
)

// Registry is the one piece of server-side session state: tokens revoked by
// logout. Everything else about a session lives inside the token itself.
type Registry interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Clear(ctx context.Context) error
}

// MemoryRegistry is the single-process default. Entries are never evicted on
// natural expiry, only by restart or Clear; tolerable because token lifetime
// is short. Multi-process deployments should use RedisRegistry instead.
type MemoryRegistry struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{revoked: make(map[string]struct{})}
}

func (r *MemoryRegistry) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = struct{}{}
	return nil
}

func (r *MemoryRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[token]
	return ok, nil
}

func (r *MemoryRegistry) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked = make(map[string]struct{})
	return nil
}
