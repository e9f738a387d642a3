package database

import (
	"context"
	"testing"
	"time"

	"salonbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking(date string) *models.Booking {
	return &models.Booking{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "0412 345 678",
		BookingDate:   date,
		BookingTime:   "10:30",
		Services: []models.CartItem{
			{ID: "a", Name: "Swedish Massage", Duration: 60, Price: 90},
			{ID: "b", Name: "Facial", Duration: 45, Price: 70},
		},
		TotalPrice: 160,
		Status:     models.StatusPending,
	}
}

func TestCreateBookingAssignsIDAndTimestamp(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	booking := testBooking("2026-09-15")
	err := db.CreateBooking(ctx, booking)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.False(t, booking.CreatedAt.IsZero())

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.CustomerName)
	assert.Equal(t, "2026-09-15", got.BookingDate)
	assert.Equal(t, "10:30", got.BookingTime)
	assert.Equal(t, 160.0, got.TotalPrice)
	assert.Equal(t, models.StatusPending, got.Status)
	require.Len(t, got.Services, 2)
	assert.Equal(t, "Swedish Massage", got.Services[0].Name)
	assert.Nil(t, got.Note)
}

func TestCreateBookingKeepsNote(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	note := "allergic to lavender oil"
	booking := testBooking("2026-09-15")
	booking.Note = &note
	require.NoError(t, db.CreateBooking(ctx, booking))

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, note, *got.Note)
}

func TestGetBookingNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBooking(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBookingsByDateRange(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, date := range []string{"2026-09-10", "2026-09-12", "2026-09-20"} {
		require.NoError(t, db.CreateBooking(ctx, testBooking(date)))
	}

	start, _ := time.Parse("2006-01-02", "2026-09-10")
	end, _ := time.Parse("2006-01-02", "2026-09-15")

	bookings, err := db.GetBookingsByDateRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "2026-09-10", bookings[0].BookingDate)
	assert.Equal(t, "2026-09-12", bookings[1].BookingDate)
}

func TestGetDailyBookings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, date := range []string{"2026-09-10", "2026-09-10", "2026-09-11"} {
		require.NoError(t, db.CreateBooking(ctx, testBooking(date)))
	}

	start, _ := time.Parse("2006-01-02", "2026-09-10")
	end, _ := time.Parse("2006-01-02", "2026-09-11")

	daily, err := db.GetDailyBookings(ctx, start, end)
	require.NoError(t, err)
	assert.Len(t, daily["2026-09-10"], 2)
	assert.Len(t, daily["2026-09-11"], 1)
}

func TestSyncQueueLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	task := &models.SyncTask{
		TaskType:  "upsert",
		BookingID: "b-1",
		Payload:   `{"booking_id":"b-1"}`,
		Status:    "pending",
	}
	require.NoError(t, db.CreateSyncTask(ctx, task))
	assert.NotZero(t, task.ID)

	pending, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, db.UpdateSyncTaskStatus(ctx, task.ID, "done", 1))

	pending, err = db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
