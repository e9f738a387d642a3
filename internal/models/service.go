package models

import "time"

// Service is a bookable offering from the salon catalog. Rows are loaded
// from the services table and treated as immutable for the session.
type Service struct {
	ID              string    `yaml:"id" json:"id"`
	Name            string    `yaml:"name" json:"name"`
	Description     string    `yaml:"description" json:"description"`
	DurationMinutes int       `yaml:"duration_minutes" json:"duration_minutes"`
	Price           float64   `yaml:"price" json:"price"`
	Category        string    `yaml:"category" json:"category"`
	DisplayOrder    int64     `yaml:"display_order" json:"display_order"`
	CreatedAt       time.Time `yaml:"-" json:"created_at,omitempty"`
}
