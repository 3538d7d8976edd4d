package usecase

import (
	"context"
	"time"

	"github.com/allisson/localvault/internal/metrics"
)

// storeUseCaseWithMetrics decorates StoreUseCase with metrics instrumentation.
type storeUseCaseWithMetrics struct {
	next    StoreUseCase
	metrics metrics.BusinessMetrics
}

// NewStoreUseCaseWithMetrics wraps a StoreUseCase with metrics recording.
func NewStoreUseCaseWithMetrics(useCase StoreUseCase, m metrics.BusinessMetrics) StoreUseCase {
	return &storeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the counter and duration for one operation.
func (s *storeUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "vault", operation, status)
	s.metrics.RecordDuration(ctx, "vault", operation, time.Since(start), status)
}

// Set records metrics for store operations.
func (s *storeUseCaseWithMetrics) Set(ctx context.Context, key string, value any, opts Options) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value, opts)
	s.record(ctx, "set", start, err)
	return err
}

// Get records metrics for retrieval operations.
func (s *storeUseCaseWithMetrics) Get(ctx context.Context, key string, out any, opts Options) (bool, error) {
	start := time.Now()
	found, err := s.next.Get(ctx, key, out, opts)
	s.record(ctx, "get", start, err)
	return found, err
}

// Has records metrics for existence checks.
func (s *storeUseCaseWithMetrics) Has(ctx context.Context, key string, opts Options) (bool, error) {
	start := time.Now()
	found, err := s.next.Has(ctx, key, opts)
	s.record(ctx, "has", start, err)
	return found, err
}

// Remove records metrics for removal operations.
func (s *storeUseCaseWithMetrics) Remove(ctx context.Context, key string, opts Options) error {
	start := time.Now()
	err := s.next.Remove(ctx, key, opts)
	s.record(ctx, "remove", start, err)
	return err
}

// migrationUseCaseWithMetrics decorates MigrationUseCase with metrics instrumentation.
type migrationUseCaseWithMetrics struct {
	next    MigrationUseCase
	metrics metrics.BusinessMetrics
}

// NewMigrationUseCaseWithMetrics wraps a MigrationUseCase with metrics recording.
func NewMigrationUseCaseWithMetrics(useCase MigrationUseCase, m metrics.BusinessMetrics) MigrationUseCase {
	return &migrationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Run records metrics for migration passes.
func (s *migrationUseCaseWithMetrics) Run(ctx context.Context) (MigrationReport, error) {
	start := time.Now()
	report, err := s.next.Run(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "migration", "run", status)
	s.metrics.RecordDuration(ctx, "migration", "run", time.Since(start), status)

	return report, err
}
