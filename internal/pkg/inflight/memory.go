package inflight

import (
	"context"
	"sync"
	"time"
)

// MemoryGuard keeps keys in process memory. Suitable for a single frontend
// replica.
type MemoryGuard struct {
	mu   sync.Mutex
	keys map[string]time.Time
	now  func() time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		keys: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Acquire reserves key for at most ttl, or until Release when ttl is zero.
// It returns false when the key is held.
func (g *MemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiry, held := g.keys[key]; held && (expiry.IsZero() || now.Before(expiry)) {
		return false, nil
	}

	var expiry time.Time
	if ttl > 0 {
		expiry = now.Add(ttl)
	}

	g.keys[key] = expiry

	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.keys, key)

	return nil
}
