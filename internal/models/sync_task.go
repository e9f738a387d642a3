package models

import "time"

// SyncTask is a persisted unit of work for the sheets worker.
type SyncTask struct {
	ID         int64     `json:"id"`
	TaskType   string    `json:"task_type"`
	BookingID  string    `json:"booking_id"`
	Payload    string    `json:"payload"`
	Status     string    `json:"status"` // pending, done, failed
	RetryCount int       `json:"retry_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
