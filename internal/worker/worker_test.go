package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonbook/internal/database"
	"salonbook/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheets struct {
	err         error
	upsertCalls int
	lastBooking *models.Booking
}

func (f *fakeSheets) UpsertBooking(ctx context.Context, booking *models.Booking) error {
	f.upsertCalls++
	f.lastBooking = booking
	return f.err
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testBooking(id string) *models.Booking {
	return &models.Booking{
		ID:            id,
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "555-0101",
		BookingDate:   "2026-09-10",
		BookingTime:   "10:00",
		Services: []models.CartItem{
			{ID: "massage", Name: "Swedish Massage", Duration: 60, Price: 80},
		},
		TotalPrice: 80,
		Status:     models.StatusPending,
	}
}

func loadTaskStatus(t *testing.T, db *database.DB, id int64) (string, int) {
	t.Helper()
	var status string
	var retryCount int
	err := db.QueryRow(`SELECT status, retry_count FROM sync_queue WHERE id = ?`, id).Scan(&status, &retryCount)
	require.NoError(t, err)
	return status, retryCount
}

func TestProcessTaskSuccess(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{}
	w := NewSheetsWorker(db, sheets, nil, RetryPolicy{}, nil)

	ctx := context.Background()
	require.NoError(t, w.EnqueueUpsert(ctx, testBooking("b-1")))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, retryCount := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "completed", status)
	assert.Equal(t, 0, retryCount)
	assert.Equal(t, 1, sheets.upsertCalls)
	require.NotNil(t, sheets.lastBooking)
	assert.Equal(t, "b-1", sheets.lastBooking.ID)
}

func TestProcessTaskRetry(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{err: errors.New("boom")}
	w := NewSheetsWorker(db, sheets, nil, RetryPolicy{MaxRetries: 3, InitialDelay: time.Second}, nil)

	ctx := context.Background()
	require.NoError(t, w.EnqueueUpsert(ctx, testBooking("b-2")))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, retryCount := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "pending", status)
	assert.Equal(t, 1, retryCount)
}

func TestProcessTaskFail(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{err: errors.New("fatal")}
	w := NewSheetsWorker(db, sheets, nil, RetryPolicy{MaxRetries: 1}, nil)

	ctx := context.Background()
	require.NoError(t, w.EnqueueUpsert(ctx, testBooking("b-3")))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, _ := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "failed", status)
}

func TestEnqueueRequiresBookingID(t *testing.T) {
	db := newTestDB(t)
	w := NewSheetsWorker(db, &fakeSheets{}, nil, RetryPolicy{}, nil)

	assert.Error(t, w.EnqueueUpsert(context.Background(), nil))
	assert.Error(t, w.EnqueueUpsert(context.Background(), &models.Booking{}))
}

func TestEnqueuePushesToRedis(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	w := NewSheetsWorker(db, &fakeSheets{}, client, RetryPolicy{}, nil)

	require.NoError(t, w.EnqueueUpsert(context.Background(), testBooking("b-4")))

	// Task went to redis, not the local queue.
	_, ok := w.tryLocalQueue()
	assert.False(t, ok)

	task, ok := w.tryRedis(context.Background())
	require.True(t, ok)
	assert.Equal(t, "b-4", task.BookingID)
	assert.Equal(t, TaskUpsert, task.TaskType)
}

func TestProcessTaskBadPayload(t *testing.T) {
	db := newTestDB(t)
	w := NewSheetsWorker(db, &fakeSheets{}, nil, RetryPolicy{}, nil)

	task := models.SyncTask{TaskType: TaskUpsert, BookingID: "b-5", Payload: "{not json", Status: "pending"}
	require.NoError(t, db.CreateSyncTask(context.Background(), &task))

	w.processTask(context.Background(), &task)

	status, _ := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "failed", status)
}

func TestRetryPolicyBackoff(t *testing.T) {
	p := RetryPolicy{MaxRetries: 5, InitialDelay: time.Second, MaxDelay: 10 * time.Second, BackoffFactor: 2}

	assert.Equal(t, time.Second, p.Backoff(1))
	assert.Equal(t, 2*time.Second, p.Backoff(2))
	assert.Equal(t, 4*time.Second, p.Backoff(3))
	assert.Equal(t, 10*time.Second, p.Backoff(10))
	assert.Equal(t, time.Second, p.Backoff(0))
}

func TestRetryPolicyNormalizedDefaults(t *testing.T) {
	p := RetryPolicy{}.normalized()

	assert.Equal(t, 5, p.MaxRetries)
	assert.Equal(t, 2*time.Second, p.InitialDelay)
	assert.Equal(t, time.Minute, p.MaxDelay)
	assert.Equal(t, float64(2), p.BackoffFactor)
}
