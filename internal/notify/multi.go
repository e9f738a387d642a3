package notify

import (
	"context"
	"errors"
	"fmt"

	"salonbook/internal/metrics"
	"salonbook/internal/models"

	"github.com/rs/zerolog"
)

// channel pairs a notifier with its name for logging and metrics.
type channel struct {
	name     string
	notifier interface {
		NotifyBooking(ctx context.Context, booking *models.Booking) error
	}
}

// MultiNotifier fans a booking out to every configured channel. Each channel
// is attempted; a failed channel is logged and counted but does not stop the
// others.
type MultiNotifier struct {
	channels []channel
	logger   *zerolog.Logger
}

func NewMultiNotifier(logger *zerolog.Logger) *MultiNotifier {
	return &MultiNotifier{logger: logger}
}

func (m *MultiNotifier) AddChannel(name string, n interface {
	NotifyBooking(ctx context.Context, booking *models.Booking) error
}) {
	m.channels = append(m.channels, channel{name: name, notifier: n})
}

func (m *MultiNotifier) NotifyBooking(ctx context.Context, booking *models.Booking) error {
	var errs []error
	for _, ch := range m.channels {
		if err := ch.notifier.NotifyBooking(ctx, booking); err != nil {
			metrics.IncNotificationFailure(ch.name)
			m.logger.Error().Err(err).
				Str("channel", ch.name).
				Str("booking_id", booking.ID).
				Msg("notification channel failed")
			errs = append(errs, fmt.Errorf("%s: %w", ch.name, err))
		}
	}
	if len(errs) == len(m.channels) && len(m.channels) > 0 {
		// Only a total miss is an error; a single working channel is
		// enough to reach the owner.
		return errors.Join(errs...)
	}
	return nil
}
