package notify

import (
	"context"
	"fmt"
	"strings"

	"salonbook/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramSender is the slice of the bot API the notifier needs. Satisfied
// by *tgbotapi.BotAPI.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier pushes a short booking summary to the owner's chat.
type TelegramNotifier struct {
	bot    telegramSender
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) NotifyBooking(ctx context.Context, booking *models.Booking) error {
	msg := tgbotapi.NewMessage(n.chatID, formatBookingMessage(booking))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func formatBookingMessage(booking *models.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New booking %s\n", booking.ID)
	fmt.Fprintf(&b, "%s at %s\n", booking.BookingDate, booking.BookingTime)
	fmt.Fprintf(&b, "Customer: %s (%s, %s)\n", booking.CustomerName, booking.CustomerPhone, booking.CustomerEmail)
	b.WriteString("Services:\n")
	for _, svc := range booking.Services {
		fmt.Fprintf(&b, "- %s (%d mins) - $%.2f\n", svc.Name, svc.Duration, svc.Price)
	}
	fmt.Fprintf(&b, "Total: $%.2f", booking.TotalPrice)
	if booking.Note != nil && *booking.Note != "" {
		fmt.Fprintf(&b, "\nNote: %s", *booking.Note)
	}
	return b.String()
}
