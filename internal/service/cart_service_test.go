package service

import (
	"context"
	"testing"

	"salonbook/internal/cart"
	"salonbook/internal/database"
	"salonbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *mockCatalog) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *mockCatalog) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestCartAdd(t *testing.T) {
	catalog := new(mockCatalog)
	carts := new(mockCarts)

	massage := &models.Service{ID: "massage", Name: "Swedish Massage", DurationMinutes: 60, Price: 80}
	catalog.On("GetServiceByID", mock.Anything, "massage").Return(massage, nil)
	carts.On("GetCart", mock.Anything, "sess-1").Return(nil, nil)
	carts.On("SetCart", mock.Anything, "sess-1", mock.AnythingOfType("*cart.Cart")).Return(nil)

	svc := NewCartService(catalog, carts, nopLogger())

	c, duplicate, err := svc.Add(context.Background(), "sess-1", "massage")
	require.NoError(t, err)
	assert.False(t, duplicate)
	require.Equal(t, 1, c.Size())
	assert.Equal(t, "Swedish Massage", c.Items[0].Name)

	carts.AssertExpectations(t)
}

func TestCartAddUnknownService(t *testing.T) {
	catalog := new(mockCatalog)
	carts := new(mockCarts)

	catalog.On("GetServiceByID", mock.Anything, "ghost").Return(nil, database.ErrServiceNotFound)

	svc := NewCartService(catalog, carts, nopLogger())

	_, _, err := svc.Add(context.Background(), "sess-1", "ghost")
	assert.ErrorIs(t, err, database.ErrServiceNotFound)
	carts.AssertNotCalled(t, "SetCart", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartAddDuplicate(t *testing.T) {
	catalog := new(mockCatalog)
	carts := new(mockCarts)

	massage := &models.Service{ID: "massage", Name: "Swedish Massage", DurationMinutes: 60, Price: 80}
	catalog.On("GetServiceByID", mock.Anything, "massage").Return(massage, nil)

	existing := cart.New()
	require.NoError(t, existing.Add(*massage))
	carts.On("GetCart", mock.Anything, "sess-1").Return(existing, nil)

	svc := NewCartService(catalog, carts, nopLogger())

	c, duplicate, err := svc.Add(context.Background(), "sess-1", "massage")
	require.NoError(t, err)
	assert.True(t, duplicate)
	assert.Equal(t, 1, c.Size())

	// Duplicate adds do not touch storage.
	carts.AssertNotCalled(t, "SetCart", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartRemoveUnknownIsNoop(t *testing.T) {
	catalog := new(mockCatalog)
	carts := new(mockCarts)

	existing := cart.New()
	require.NoError(t, existing.Add(models.Service{ID: "massage", Name: "Swedish Massage", DurationMinutes: 60, Price: 80}))
	carts.On("GetCart", mock.Anything, "sess-1").Return(existing, nil)
	carts.On("SetCart", mock.Anything, "sess-1", mock.AnythingOfType("*cart.Cart")).Return(nil)

	svc := NewCartService(catalog, carts, nopLogger())

	c, err := svc.Remove(context.Background(), "sess-1", "nope")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Size())
}

func TestCartGetEmptySession(t *testing.T) {
	catalog := new(mockCatalog)
	carts := new(mockCarts)

	carts.On("GetCart", mock.Anything, "fresh").Return(nil, nil)

	svc := NewCartService(catalog, carts, nopLogger())

	c, err := svc.Get(context.Background(), "fresh")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.IsEmpty())
}

func TestCartClear(t *testing.T) {
	catalog := new(mockCatalog)
	carts := new(mockCarts)

	carts.On("ClearCart", mock.Anything, "sess-1").Return(nil)

	svc := NewCartService(catalog, carts, nopLogger())
	require.NoError(t, svc.Clear(context.Background(), "sess-1"))
	carts.AssertExpectations(t)
}
