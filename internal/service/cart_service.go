package service

import (
	"context"
	"errors"
	"fmt"

	"salonbook/internal/cart"
	"salonbook/internal/domain"
	"salonbook/internal/metrics"

	"github.com/rs/zerolog"
)

// CartService funnels all cart mutation through the four operations the
// session owns: add, remove, totals (via the cart itself) and clear.
type CartService struct {
	catalog domain.CatalogService
	carts   domain.CartRepository
	logger  *zerolog.Logger
}

func NewCartService(catalog domain.CatalogService, carts domain.CartRepository, logger *zerolog.Logger) *CartService {
	return &CartService{
		catalog: catalog,
		carts:   carts,
		logger:  logger,
	}
}

// Get returns the session's cart, never nil.
func (s *CartService) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c == nil {
		c = cart.New()
	}
	return c, nil
}

// Add snapshots the service into the session's cart. The duplicate flag is
// an informational notice: the cart is unchanged and no error is returned.
func (s *CartService) Add(ctx context.Context, sessionID, serviceID string) (*cart.Cart, bool, error) {
	svc, err := s.catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, false, err
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	if err := c.Add(*svc); err != nil {
		if errors.Is(err, cart.ErrDuplicateItem) {
			metrics.IncCartOp("duplicate")
			return c, true, nil
		}
		return nil, false, err
	}

	if err := s.carts.SetCart(ctx, sessionID, c); err != nil {
		return nil, false, fmt.Errorf("save cart: %w", err)
	}

	metrics.IncCartOp("add")
	return c, false, nil
}

// Remove deletes the item if present; unknown ids are a no-op.
func (s *CartService) Remove(ctx context.Context, sessionID, serviceID string) (*cart.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Remove(serviceID)
	if err := s.carts.SetCart(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	metrics.IncCartOp("remove")
	return c, nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	metrics.IncCartOp("clear")
	return nil
}
