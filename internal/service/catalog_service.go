package service

import (
	"context"
	"sync"

	"salonbook/internal/domain"
	"salonbook/internal/models"

	"github.com/rs/zerolog"
)

// CatalogService caches the service catalog in memory. The catalog changes
// only via the seed script, so the cache is refreshed explicitly, not on a
// timer.
type CatalogService struct {
	store       domain.Store
	logger      *zerolog.Logger
	services    []models.Service
	servicesMap map[string]models.Service
	mu          sync.RWMutex
}

func NewCatalogService(store domain.Store, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:       store,
		logger:      logger,
		servicesMap: make(map[string]models.Service),
	}
}

// GetServices returns the cached catalog, loading it on first use.
func (s *CatalogService) GetServices(ctx context.Context) ([]models.Service, error) {
	s.mu.RLock()
	if s.services != nil {
		defer s.mu.RUnlock()
		return s.services, nil
	}
	s.mu.RUnlock()

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services, nil
}

func (s *CatalogService) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	svc, ok := s.servicesMap[id]
	s.mu.RUnlock()
	if ok {
		return &svc, nil
	}

	// Cache miss goes to the store so a freshly seeded row is reachable
	// without a restart.
	return s.store.GetServiceByID(ctx, id)
}

func (s *CatalogService) Refresh(ctx context.Context) error {
	services, err := s.store.GetServices(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if services == nil {
		services = []models.Service{}
	}
	s.services = services
	s.servicesMap = make(map[string]models.Service, len(services))
	for _, svc := range services {
		s.servicesMap[svc.ID] = svc
	}

	s.logger.Info().Int("count", len(services)).Msg("service catalog loaded")
	return nil
}
