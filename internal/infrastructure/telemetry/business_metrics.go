// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the job board.
// It tracks listing activity, application submissions, and catalog size.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	jobCreatedTotal           *Counter
	feedRefreshTotal          *Counter
	applicationSubmittedTotal *Counter

	// Gauge metrics (point-in-time values)
	jobListingCount     *Gauge
	registeredUserCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	catalogProvider CatalogMetricsProvider
}

// CatalogMetricsProvider provides catalog data for periodic metrics collection.
// This interface allows the telemetry layer to query listing and account state
// without depending on the domain packages directly.
type CatalogMetricsProvider interface {
	// GetJobCount returns the total number of job listings
	GetJobCount(ctx context.Context) (int64, error)

	// GetUserCount returns the total number of registered accounts
	GetUserCount(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	CatalogProvider CatalogMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		catalogProvider: cfg.CatalogProvider,
	}

	var err error

	bm.jobCreatedTotal, err = NewCounter(
		cfg.Meter,
		"jobboard_job_created_total",
		"Total number of job listings created",
		"{jobs}",
	)
	if err != nil {
		return nil, err
	}

	bm.feedRefreshTotal, err = NewCounter(
		cfg.Meter,
		"jobboard_feed_refresh_total",
		"Total number of listing feed refreshes",
		"{refreshes}",
	)
	if err != nil {
		return nil, err
	}

	bm.applicationSubmittedTotal, err = NewCounter(
		cfg.Meter,
		"jobboard_application_submitted_total",
		"Total number of job applications submitted",
		"{applications}",
	)
	if err != nil {
		return nil, err
	}

	bm.jobListingCount, err = NewGauge(
		cfg.Meter,
		"jobboard_job_listing_count",
		"Current number of job listings in the catalog",
		"{jobs}",
	)
	if err != nil {
		return nil, err
	}

	bm.registeredUserCount, err = NewGauge(
		cfg.Meter,
		"jobboard_registered_user_count",
		"Current number of registered accounts",
		"{users}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Counter Metrics
// =============================================================================

// JobCreated records a listing creation event.
func (bm *BusinessMetrics) JobCreated(ctx context.Context, category string) {
	bm.jobCreatedTotal.Inc(ctx, AttrJobCategory.String(category))
}

// FeedRefreshed records a listing feed refresh.
func (bm *BusinessMetrics) FeedRefreshed(ctx context.Context) {
	bm.feedRefreshTotal.Inc(ctx)
}

// ApplicationSubmitted records a job application submission.
func (bm *BusinessMetrics) ApplicationSubmitted(ctx context.Context, jobCategory string) {
	bm.applicationSubmittedTotal.Inc(ctx, AttrJobCategory.String(jobCategory))
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects catalog metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectCatalogMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectCatalogMetrics(ctx)
		}
	}
}

func (bm *BusinessMetrics) collectCatalogMetrics(ctx context.Context) {
	if bm.catalogProvider == nil {
		bm.logger.Debug("No catalog provider configured, skipping catalog metrics collection")
		return
	}

	jobCount, err := bm.catalogProvider.GetJobCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get job count for metrics collection", zap.Error(err))
	} else {
		bm.jobListingCount.Record(ctx, jobCount)
	}

	userCount, err := bm.catalogProvider.GetUserCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get user count for metrics collection", zap.Error(err))
	} else {
		bm.registeredUserCount.Record(ctx, userCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
