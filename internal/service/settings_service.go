package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/repository"
)

const settingsCacheTTL = time.Minute

// SettingsService serves the store configuration with a short-lived cache.
// Every checkout quote reads the settings, so the document is cached and
// concurrent refreshes collapse into a single repository call.
type SettingsService struct {
	repo   repository.SettingsRepository
	logger *zap.Logger
	sfg    singleflight.Group

	mu        sync.RWMutex
	cached    *domain.StoreSettings
	fetchedAt time.Time
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the store settings, from cache when fresh
func (s *SettingsService) Get(ctx context.Context) (*domain.StoreSettings, error) {
	s.mu.RLock()
	cached, fetchedAt := s.cached, s.fetchedAt
	s.mu.RUnlock()
	if cached != nil && time.Since(fetchedAt) < settingsCacheTTL {
		return cached, nil
	}

	v, err, _ := s.sfg.Do("settings", func() (interface{}, error) {
		settings, err := s.repo.Get(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = settings
		s.fetchedAt = time.Now()
		s.mu.Unlock()
		return settings, nil
	})
	if err != nil {
		// Serve stale settings rather than failing the checkout page
		if cached != nil {
			s.logger.Warn("Settings refresh failed, serving cached value", zap.Error(err))
			return cached, nil
		}
		return nil, err
	}
	return v.(*domain.StoreSettings), nil
}

// Update writes the settings document and invalidates the cache
func (s *SettingsService) Update(ctx context.Context, settings *domain.StoreSettings) error {
	if err := s.repo.Update(ctx, settings); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Invalidate drops the cached settings
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}
