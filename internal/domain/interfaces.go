package domain

import (
	"context"
	"time"

	"salonbook/internal/cart"
	"salonbook/internal/models"
)

// Store is the persistent catalog and booking storage.
type Store interface {
	GetServices(ctx context.Context) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error)
	GetDailyBookings(ctx context.Context, start, end time.Time) (map[string][]models.Booking, error)
}

// CartRepository persists per-session carts.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*cart.Cart, error)
	SetCart(ctx context.Context, sessionID string, c *cart.Cart) error
	ClearCart(ctx context.Context, sessionID string) error
	CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error)
}

// Notifier delivers a booking summary to the business owner. Best effort;
// failures never affect the booking flow.
type Notifier interface {
	NotifyBooking(ctx context.Context, booking *models.Booking) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// SyncWorker mirrors bookings into the owner's spreadsheet.
type SyncWorker interface {
	EnqueueUpsert(ctx context.Context, booking *models.Booking) error
}

type CatalogService interface {
	GetServices(ctx context.Context) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	Refresh(ctx context.Context) error
}

type BookingService interface {
	ValidateRequest(req *models.BookingRequest) error
	Submit(ctx context.Context, sessionID string, req *models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error)
	GetDailyBookings(ctx context.Context, start, end time.Time) (map[string][]models.Booking, error)
}
