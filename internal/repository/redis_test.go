package repository

import (
	"context"
	"testing"
	"time"

	"salonbook/internal/cart"
	"salonbook/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepo(t *testing.T) *RedisCartRepository {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCartRepository(client, time.Hour)
}

func sampleCart(t *testing.T) *cart.Cart {
	c := cart.New()
	require.NoError(t, c.Add(models.Service{ID: "a", Name: "Swedish Massage", DurationMinutes: 60, Price: 90}))
	require.NoError(t, c.Add(models.Service{ID: "b", Name: "Facial", DurationMinutes: 45, Price: 70}))
	return c
}

func TestRedisCartRepository(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()

	t.Run("SetAndGetCart", func(t *testing.T) {
		require.NoError(t, repo.SetCart(ctx, "session-1", sampleCart(t)))

		got, err := repo.GetCart(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.Size())
		assert.Equal(t, 160.0, got.Total())
		assert.Equal(t, "a", got.Items[0].ID)
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

	t.Run("RateLimit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			allowed, err := repo.CheckRateLimit(ctx, "session-3", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := repo.CheckRateLimit(ctx, "session-3", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestRedisCartRepositoryNilClient(t *testing.T) {
	repo := NewRedisCartRepository(nil, time.Hour)
	ctx := context.Background()

	_, err := repo.GetCart(ctx, "s")
	assert.Error(t, err)
	assert.Error(t, repo.SetCart(ctx, "s", cart.New()))
	assert.Error(t, repo.ClearCart(ctx, "s"))
}
