package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryOfferNumberRegistry reserves offer numbers for the lifetime of one process.
type MemoryOfferNumberRegistry struct {
	mu       sync.Mutex
	reserved map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryOfferNumberRegistry(ttl time.Duration) *MemoryOfferNumberRegistry {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &MemoryOfferNumberRegistry{
		reserved: make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *MemoryOfferNumberRegistry) Reserve(ctx context.Context, number string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if expires, ok := r.reserved[number]; ok && now.Before(expires) {
		return false, nil
	}
	r.reserved[number] = now.Add(r.ttl)
	return true, nil
}

func (r *MemoryOfferNumberRegistry) Release(ctx context.Context, number string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reserved, number)
	return nil
}
