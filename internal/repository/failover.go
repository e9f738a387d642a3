package repository

import (
	"context"
	"sync/atomic"
	"time"

	"salonbook/internal/cart"
	"salonbook/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverCartRepository serves from the primary (Redis) until it errors,
// then switches to the fallback (memory) and probes the primary again a
// minute later. Sessions started during an outage stay consistent because
// all operations for them land on the fallback.
type FailoverCartRepository struct {
	primary   domain.CartRepository
	fallback  domain.CartRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverCartRepository(primary, fallback domain.CartRepository, logger *zerolog.Logger) *FailoverCartRepository {
	return &FailoverCartRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

const recoveryProbeInterval = time.Minute

func (r *FailoverCartRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary cart repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverCartRepository) shouldProbe() bool {
	last := time.Unix(0, r.lastCheck.Load())
	return time.Since(last) > recoveryProbeInterval
}

func (r *FailoverCartRepository) GetCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if !r.isDown.Load() {
		c, err := r.primary.GetCart(ctx, sessionID)
		if err == nil {
			return c, nil
		}
		r.markDown(err)
	} else if r.shouldProbe() {
		c, err := r.primary.GetCart(ctx, sessionID)
		if err == nil {
			r.isDown.Store(false)
			return c, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.GetCart(ctx, sessionID)
}

func (r *FailoverCartRepository) SetCart(ctx context.Context, sessionID string, c *cart.Cart) error {
	if !r.isDown.Load() {
		err := r.primary.SetCart(ctx, sessionID, c)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SetCart(ctx, sessionID, c)
}

func (r *FailoverCartRepository) ClearCart(ctx context.Context, sessionID string) error {
	if !r.isDown.Load() {
		err := r.primary.ClearCart(ctx, sessionID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.ClearCart(ctx, sessionID)
}

func (r *FailoverCartRepository) CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, sessionID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, sessionID, limit, window)
}
