package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCartRepository(t *testing.T) {
	repo := NewMemoryCartRepository(time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetCart", func(t *testing.T) {
		require.NoError(t, repo.SetCart(ctx, "session-1", sampleCart(t)))

		got, err := repo.GetCart(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 160.0, got.Total())
	})

	t.Run("GetNonExistentCart", func(t *testing.T) {
		got, err := repo.GetCart(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearCart", func(t *testing.T) {
		require.NoError(t, repo.SetCart(ctx, "session-2", sampleCart(t)))
		require.NoError(t, repo.ClearCart(ctx, "session-2"))

		got, err := repo.GetCart(ctx, "session-2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ExpiredCartIsDropped", func(t *testing.T) {
		short := NewMemoryCartRepository(time.Millisecond)
		require.NoError(t, short.SetCart(ctx, "session-3", sampleCart(t)))

		time.Sleep(5 * time.Millisecond)

		got, err := short.GetCart(ctx, "session-3")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("RateLimit", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			allowed, err := repo.CheckRateLimit(ctx, "session-4", 2, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := repo.CheckRateLimit(ctx, "session-4", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("RateLimitConcurrent", func(t *testing.T) {
		const (
			limit   = 5
			callers = 50
		)

		var (
			wg      sync.WaitGroup
			allowed atomic.Int64
		)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := repo.CheckRateLimit(ctx, "session-6", limit, time.Minute)
				require.NoError(t, err)
				if ok {
					allowed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(limit), allowed.Load())
	})

	t.Run("RateLimitWindowResets", func(t *testing.T) {
		allowed, err := repo.CheckRateLimit(ctx, "session-5", 1, time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed)

		time.Sleep(5 * time.Millisecond)

		allowed, err = repo.CheckRateLimit(ctx, "session-5", 1, time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
