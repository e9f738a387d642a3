package models

import "time"

// CartItem is a denormalized snapshot of a service taken at add-to-cart time.
// Bookings keep these snapshots so later catalog edits do not rewrite what
// the customer agreed to.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

// BookingRequest is the payload the booking form submits. Note is optional,
// everything else is required. Date is a plain calendar date (YYYY-MM-DD),
// Time one of the advertised half-hour slots (HH:MM).
type BookingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Note  string `json:"note,omitempty"`
}

// Booking is the persisted reservation record. Immutable after creation from
// the client's perspective; id and creation timestamp are assigned by the
// store.
type Booking struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	CustomerPhone string     `json:"customer_phone"`
	BookingDate   string     `json:"booking_date"`
	BookingTime   string     `json:"booking_time"`
	Services      []CartItem `json:"services"`
	TotalPrice    float64    `json:"total_price"`
	Note          *string    `json:"note,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}
