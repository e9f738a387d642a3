package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"salonbook/internal/config"
	"salonbook/internal/models"
)

// EmailNotifier sends the owner a booking summary through a Resend-style
// transactional email API.
type EmailNotifier struct {
	apiURL     string
	apiKey     string
	from       string
	to         string
	httpClient *http.Client
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// EmailResult is the provider's acknowledgement, forwarded to callers of the
// notification endpoint.
type EmailResult struct {
	ID string `json:"id"`
}

func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		to:         cfg.To,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *EmailNotifier) NotifyBooking(ctx context.Context, booking *models.Booking) error {
	_, err := n.Send(ctx, booking)
	return err
}

// Send delivers the email and returns the provider acknowledgement.
func (n *EmailNotifier) Send(ctx context.Context, booking *models.Booking) (*EmailResult, error) {
	payload := emailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: fmt.Sprintf("New Booking: %s - %s", booking.CustomerName, booking.BookingDate),
		HTML:    renderBookingEmail(booking),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("email api: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result EmailResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// renderBookingEmail builds the owner summary: booking details, customer
// contact, the per-service lines and the total, plus the note when present.
func renderBookingEmail(booking *models.Booking) string {
	var services strings.Builder
	for i, svc := range booking.Services {
		if i > 0 {
			services.WriteString("\n")
		}
		fmt.Fprintf(&services, "- %s (%d mins) - $%.2f", html.EscapeString(svc.Name), svc.Duration, svc.Price)
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h1>New Booking Received</h1>`)
	fmt.Fprintf(&b, `<p><strong>Booking ID:</strong> %s</p>`, html.EscapeString(booking.ID))
	fmt.Fprintf(&b, `<p><strong>Date:</strong> %s</p>`, html.EscapeString(booking.BookingDate))
	fmt.Fprintf(&b, `<p><strong>Time:</strong> %s</p>`, html.EscapeString(booking.BookingTime))
	b.WriteString(`<h3>Customer Information</h3>`)
	fmt.Fprintf(&b, `<p><strong>Name:</strong> %s</p>`, html.EscapeString(booking.CustomerName))
	fmt.Fprintf(&b, `<p><strong>Email:</strong> %s</p>`, html.EscapeString(booking.CustomerEmail))
	fmt.Fprintf(&b, `<p><strong>Phone:</strong> %s</p>`, html.EscapeString(booking.CustomerPhone))
	b.WriteString(`<h3>Selected Services</h3>`)
	fmt.Fprintf(&b, `<pre style="font-family: Arial, sans-serif; white-space: pre-wrap;">%s</pre>`, services.String())
	fmt.Fprintf(&b, `<p style="font-size: 18px;"><strong>Total: $%.2f</strong></p>`, booking.TotalPrice)
	if booking.Note != nil && *booking.Note != "" {
		b.WriteString(`<h3>Additional Notes</h3>`)
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(*booking.Note))
	}
	b.WriteString(`<p style="color: #666;">Please contact the customer to confirm the appointment.</p>`)
	b.WriteString(`</div>`)
	return b.String()
}
