package settings

import (
	"context"
	"sync"
	"time"

	"repairdesk/internal/core/apperror"
	appctx "repairdesk/internal/core/context"
	"repairdesk/pkg/logger"
)

// Service provides settings access with an in-memory cache. Settings change
// rarely and are read on every low stock report, so reads hit the cache and
// writes refresh it.
type Service struct {
	repo Repository

	mu     sync.RWMutex
	cached *Settings
}

// NewService creates a new settings service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the current settings, falling back to defaults when none have
// been saved yet.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	s.mu.RLock()
	if s.cached != nil {
		cp := *s.cached
		s.mu.RUnlock()
		return &cp, nil
	}
	s.mu.RUnlock()

	current, err := s.repo.Get(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			current = Defaults()
		} else {
			return nil, err
		}
	}

	s.mu.Lock()
	s.cached = current
	s.mu.Unlock()

	cp := *current
	return &cp, nil
}

// Update validates and persists new settings, then refreshes the cache.
func (s *Service) Update(ctx context.Context, next *Settings) (*Settings, error) {
	if err := next.Validate(ctx); err != nil {
		return nil, err
	}

	next.UpdatedAt = time.Now().UTC()
	next.UpdatedBy = appctx.GetUserID(ctx)

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = next
	s.mu.Unlock()

	logger.Info(ctx, "settings updated",
		"low_stock_threshold", next.LowStockThreshold)

	cp := *next
	return &cp, nil
}

// LowStockThreshold implements reports.ThresholdProvider.
func (s *Service) LowStockThreshold(ctx context.Context) (int64, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return current.LowStockThreshold, nil
}
