package repository

import (
	"context"
	"sync"
	"time"

	"salonbook/internal/cart"
)

// MemoryCartRepository is the in-process fallback when Redis is absent or
// down. Expiry is checked lazily on read.
type MemoryCartRepository struct {
	carts sync.Map
	ttl   time.Duration

	rateMu     sync.Mutex
	rateLimits map[string]*rateLimitEntry
}

type cartEntry struct {
	cart      *cart.Cart
	expiresAt time.Time
}

func NewMemoryCartRepository(ttl time.Duration) *MemoryCartRepository {
	return &MemoryCartRepository{
		ttl:        ttl,
		rateLimits: make(map[string]*rateLimitEntry),
	}
}

func (r *MemoryCartRepository) GetCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	val, ok := r.carts.Load(sessionID)
	if !ok {
		return nil, nil
	}
	entry := val.(*cartEntry)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		r.carts.Delete(sessionID)
		return nil, nil
	}
	return entry.cart, nil
}

func (r *MemoryCartRepository) SetCart(ctx context.Context, sessionID string, c *cart.Cart) error {
	r.carts.Store(sessionID, &cartEntry{cart: c, expiresAt: time.Now().Add(r.ttl)})
	return nil
}

func (r *MemoryCartRepository) ClearCart(ctx context.Context, sessionID string) error {
	r.carts.Delete(sessionID)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryCartRepository) CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	// The whole increment happens under the mutex so concurrent callers
	// cannot read the same count.
	r.rateMu.Lock()
	defer r.rateMu.Unlock()

	entry, ok := r.rateLimits[sessionID]
	if !ok || now.After(entry.expiresAt) {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
		r.rateLimits[sessionID] = entry
		return entry.count <= limit, nil
	}

	entry.count++
	return entry.count <= limit, nil
}
