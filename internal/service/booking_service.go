package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/events"
	"salonbook/internal/metrics"
	"salonbook/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	store           domain.Store
	carts           domain.CartRepository
	notifier        domain.Notifier
	eventBus        domain.EventPublisher
	syncWorker      domain.SyncWorker
	maxAdvanceDays  int
	rateLimitMax    int
	rateLimitWindow time.Duration
	logger          *zerolog.Logger
}

// SetRateLimit enables the per-session submission budget. Zero disables it.
func (s *BookingService) SetRateLimit(requests int, window time.Duration) {
	s.rateLimitMax = requests
	s.rateLimitWindow = window
}

func NewBookingService(
	store domain.Store,
	carts domain.CartRepository,
	notifier domain.Notifier,
	eventBus domain.EventPublisher,
	syncWorker domain.SyncWorker,
	maxAdvanceDays int,
	logger *zerolog.Logger,
) *BookingService {
	if maxAdvanceDays <= 0 {
		maxAdvanceDays = models.DefaultMaxAdvanceDays
	}
	return &BookingService{
		store:          store,
		carts:          carts,
		notifier:       notifier,
		eventBus:       eventBus,
		syncWorker:     syncWorker,
		maxAdvanceDays: maxAdvanceDays,
		logger:         logger,
	}
}

// ValidateRequest mirrors the booking form's gating: all five required
// fields present, date not in the past, time one of the offered slots.
// Presence-only for email and phone.
func (s *BookingService) ValidateRequest(req *models.BookingRequest) error {
	required := []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"date", req.Date},
		{"time", req.Time},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return ErrInvalidDate
	}

	// Calendar dates compare as strings in this format. Parsed values would
	// sit at UTC midnight and shift the today boundary by the zone offset.
	today := time.Now().Format("2006-01-02")
	if req.Date < today {
		return ErrPastDate
	}
	if req.Date > time.Now().AddDate(0, 0, s.maxAdvanceDays).Format("2006-01-02") {
		return ErrDateTooFar
	}

	if !models.IsValidSlot(req.Time) {
		return ErrInvalidSlot
	}

	return nil
}

// Submit composes the session's cart and the form payload into a booking,
// persists it and fires the owner notification. Persistence success is the
// sole condition for success: notification and sync failures are logged and
// never propagated. The cart is cleared only after a successful insert.
func (s *BookingService) Submit(ctx context.Context, sessionID string, req *models.BookingRequest) (*models.Booking, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	if s.rateLimitMax > 0 {
		allowed, err := s.carts.CheckRateLimit(ctx, sessionID, s.rateLimitMax, s.rateLimitWindow)
		if err != nil {
			// Limiter trouble never blocks a customer.
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("rate limit check failed")
		} else if !allowed {
			return nil, ErrRateLimited
		}
	}

	c, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// Total is recomputed from the cart at submission time, not reused
	// from an earlier snapshot.
	booking := &models.Booking{
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
		BookingDate:   req.Date,
		BookingTime:   req.Time,
		Services:      c.Items,
		TotalPrice:    c.Total(),
		Status:        models.StatusPending,
	}
	if note := strings.TrimSpace(req.Note); note != "" {
		booking.Note = &note
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		// Cart is left untouched so the customer can retry.
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.IncBookingCreated()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("date", booking.BookingDate).
		Str("time", booking.BookingTime).
		Int("services", len(booking.Services)).
		Float64("total", booking.TotalPrice).
		Msg("booking created")

	s.notifyOwner(ctx, booking)
	s.publishCreated(booking)
	s.enqueueSync(ctx, booking)

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		// The booking exists either way; a stale cart only means the
		// customer sees leftovers next visit.
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("clear cart after submit failed")
	}

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

func (s *BookingService) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	return s.store.GetBookingsByDateRange(ctx, start, end)
}

func (s *BookingService) GetDailyBookings(ctx context.Context, start, end time.Time) (map[string][]models.Booking, error) {
	return s.store.GetDailyBookings(ctx, start, end)
}

func (s *BookingService) notifyOwner(ctx context.Context, booking *models.Booking) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.NotifyBooking(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID).Msg("owner notification failed")
		if s.eventBus != nil {
			_ = s.eventBus.PublishJSON(events.EventNotificationFailed, events.BookingEventPayload{
				BookingID:    booking.ID,
				CustomerName: booking.CustomerName,
				BookingDate:  booking.BookingDate,
			})
		}
	}
}

func (s *BookingService) publishCreated(booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:     booking.ID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		BookingDate:   booking.BookingDate,
		BookingTime:   booking.BookingTime,
		ServiceCount:  len(booking.Services),
		TotalPrice:    booking.TotalPrice,
	}

	if err := s.eventBus.PublishJSON(events.EventBookingCreated, payload); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueSync(ctx context.Context, booking *models.Booking) {
	if s.syncWorker == nil {
		return
	}

	if err := s.syncWorker.EnqueueUpsert(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID).Msg("sheets enqueue error")
	}
}
