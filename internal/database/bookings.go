package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salonbook/internal/models"

	"github.com/google/uuid"
)

// CreateBooking persists the record and fills in the store-assigned id and
// creation timestamp. The services snapshot is stored as a JSON column, the
// way the original store kept it.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = models.StatusPending
	}

	servicesJSON, err := json.Marshal(booking.Services)
	if err != nil {
		return fmt.Errorf("failed to encode services snapshot: %w", err)
	}

	var note any
	if booking.Note != nil {
		note = *booking.Note
	}

	query := `INSERT INTO bookings (
				id, customer_name, customer_email, customer_phone,
				booking_date, booking_time, services, total_price, note, status, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	_, err = db.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.BookingDate,
		booking.BookingTime,
		string(servicesJSON),
		booking.TotalPrice,
		note,
		booking.Status,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT id, customer_name, customer_email, customer_phone, booking_date, booking_time,
                     services, total_price, note, status, created_at
              FROM bookings WHERE id = ?`

	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetBookingsByDateRange returns bookings whose calendar date falls in
// [start, end], ordered by date then slot.
func (db *DB) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	query := `SELECT id, customer_name, customer_email, customer_phone, booking_date, booking_time,
                     services, total_price, note, status, created_at
              FROM bookings
              WHERE booking_date BETWEEN ? AND ?
              ORDER BY booking_date, booking_time, created_at`

	rows, err := db.QueryContext(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by date range: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return bookings, nil
}

// GetDailyBookings groups a date range by calendar date for the exporter.
func (db *DB) GetDailyBookings(ctx context.Context, start, end time.Time) (map[string][]models.Booking, error) {
	bookings, err := db.GetBookingsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	daily := make(map[string][]models.Booking)
	for _, booking := range bookings {
		daily[booking.BookingDate] = append(daily[booking.BookingDate], booking)
	}
	return daily, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	var servicesJSON string
	var note sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.BookingDate,
		&booking.BookingTime,
		&servicesJSON,
		&booking.TotalPrice,
		&note,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(servicesJSON), &booking.Services); err != nil {
		return nil, fmt.Errorf("failed to decode services snapshot: %w", err)
	}
	if note.Valid {
		booking.Note = &note.String
	}

	return &booking, nil
}
