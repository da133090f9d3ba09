package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/estoquelab/stocklens/internal/cache"
	"github.com/estoquelab/stocklens/internal/domain"
	"github.com/estoquelab/stocklens/internal/engine"
	"github.com/estoquelab/stocklens/internal/repository"
)

// Overview bundles the two independent engine outputs for consumers
// that want one round trip.
type Overview struct {
	Metrics     domain.DashboardMetrics     `json:"metrics"`
	Suggestions []domain.PurchaseSuggestion `json:"suggestions"`
}

type DashboardService struct {
	repo        repository.InventoryRepository
	cache       cache.MetricsCache
	defaultDays float64
}

func NewDashboardService(repo repository.InventoryRepository, cacheImpl cache.MetricsCache) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopMetricsCache()
	}
	return &DashboardService{
		repo:        repo,
		cache:       cacheImpl,
		defaultDays: engine.DefaultTargetCoverageDays,
	}
}

// WithDefaultTargetDays overrides the fallback coverage horizon used
// when a request does not carry one. Values <= 0 are ignored.
func (s *DashboardService) WithDefaultTargetDays(days float64) *DashboardService {
	if days > 0 {
		s.defaultDays = days
	}
	return s
}

// GetMetrics computes dashboard metrics for one snapshot date, serving
// from cache when possible. Cache failures are logged and ignored: the
// dashboard always renders from a fresh computation if it has to.
func (s *DashboardService) GetMetrics(ctx context.Context, snapshotDate string) (*domain.DashboardMetrics, error) {
	if metrics, ok, err := s.cache.Get(ctx, snapshotDate); err == nil && ok {
		return metrics, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory metrics: cache get failed")
	}

	records, err := s.repo.GetSnapshot(ctx, snapshotDate)
	if err != nil {
		return nil, err
	}

	metrics := engine.ComputeDashboardMetrics(records)

	if err := s.cache.Set(ctx, snapshotDate, &metrics); err != nil {
		log.Warn().Err(err).Msg("inventory metrics: cache set failed")
	}

	return &metrics, nil
}

// GetSuggestions computes the ranked purchase suggestions for one
// snapshot date. targetDays <= 0 falls back to the configured default.
func (s *DashboardService) GetSuggestions(ctx context.Context, snapshotDate string, targetDays float64) ([]domain.PurchaseSuggestion, error) {
	if targetDays <= 0 {
		targetDays = s.defaultDays
	}

	records, err := s.repo.GetSnapshot(ctx, snapshotDate)
	if err != nil {
		return nil, err
	}

	return engine.GeneratePurchaseSuggestions(records, targetDays), nil
}

// GetOverview loads the snapshot once and computes metrics and
// suggestions concurrently; the two computations are independent and
// share no state.
func (s *DashboardService) GetOverview(ctx context.Context, snapshotDate string, targetDays float64) (*Overview, error) {
	if targetDays <= 0 {
		targetDays = s.defaultDays
	}

	records, err := s.repo.GetSnapshot(ctx, snapshotDate)
	if err != nil {
		return nil, err
	}

	var overview Overview
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview.Metrics = engine.ComputeDashboardMetrics(records)
		return nil
	})
	g.Go(func() error {
		overview.Suggestions = engine.GeneratePurchaseSuggestions(records, targetDays)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &overview, nil
}

func (s *DashboardService) GetAvailableDates(ctx context.Context, limit int) ([]time.Time, error) {
	return s.repo.GetAvailableDates(ctx, limit)
}

// InvalidateCache drops every cached metrics entry, forcing the next
// reads to recompute.
func (s *DashboardService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
