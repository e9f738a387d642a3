package service

import (
	"context"
	"errors"
	"testing"

	"salonbook/internal/database"
	"salonbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []models.Service {
	return []models.Service{
		{ID: "massage", Name: "Swedish Massage", DurationMinutes: 60, Price: 80, Category: "massage"},
		{ID: "facial", Name: "Classic Facial", DurationMinutes: 45, Price: 80, Category: "skincare"},
	}
}

func TestCatalogGetServicesLazyLoad(t *testing.T) {
	store := new(mockStore)
	store.On("GetServices", mock.Anything).Return(catalogFixture(), nil).Once()

	svc := NewCatalogService(store, nopLogger())

	got, err := svc.GetServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Second call is served from the cache.
	got, err = svc.GetServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	store.AssertExpectations(t)
}

func TestCatalogGetServicesStoreError(t *testing.T) {
	store := new(mockStore)
	store.On("GetServices", mock.Anything).Return(nil, errors.New("db locked"))

	svc := NewCatalogService(store, nopLogger())

	_, err := svc.GetServices(context.Background())
	assert.Error(t, err)
}

func TestCatalogGetServiceByIDCached(t *testing.T) {
	store := new(mockStore)
	store.On("GetServices", mock.Anything).Return(catalogFixture(), nil).Once()

	svc := NewCatalogService(store, nopLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	got, err := svc.GetServiceByID(context.Background(), "facial")
	require.NoError(t, err)
	assert.Equal(t, "Classic Facial", got.Name)

	store.AssertNotCalled(t, "GetServiceByID", mock.Anything, mock.Anything)
}

func TestCatalogGetServiceByIDCacheMiss(t *testing.T) {
	store := new(mockStore)
	store.On("GetServices", mock.Anything).Return(catalogFixture(), nil).Once()
	store.On("GetServiceByID", mock.Anything, "pedicure").Return(nil, database.ErrServiceNotFound)

	svc := NewCatalogService(store, nopLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	_, err := svc.GetServiceByID(context.Background(), "pedicure")
	assert.ErrorIs(t, err, database.ErrServiceNotFound)
}

func TestCatalogRefreshReplacesCache(t *testing.T) {
	store := new(mockStore)
	store.On("GetServices", mock.Anything).Return(catalogFixture(), nil).Once()
	store.On("GetServices", mock.Anything).Return([]models.Service{
		{ID: "pedicure", Name: "Pedicure", DurationMinutes: 30, Price: 40},
	}, nil).Once()

	svc := NewCatalogService(store, nopLogger())
	require.NoError(t, svc.Refresh(context.Background()))
	require.NoError(t, svc.Refresh(context.Background()))

	got, err := svc.GetServices(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pedicure", got[0].ID)

	_, err = svc.GetServiceByID(context.Background(), "pedicure")
	assert.NoError(t, err)
}
