package listing

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	domain "github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	// SnapshotLimit bounds how many listings the shared snapshot holds
	SnapshotLimit = 100

	// DefaultCacheTTL is how long a snapshot stays fresh
	DefaultCacheTTL = 5 * time.Minute

	// DefaultPageSize is used when a query does not set one
	DefaultPageSize = 20
)

// ListingMetrics receives listing activity events for metrics collection.
type ListingMetrics interface {
	JobCreated(ctx context.Context, category string)
	FeedRefreshed(ctx context.Context)
}

// ListingService serves the job board read path. The default feed comes
// from a shared snapshot: cache first, then a repository fetch that
// repopulates it. Restricted queries bypass the snapshot and run in SQL.
type ListingService struct {
	jobRepo  domain.JobRepository
	cache    domain.SnapshotCache
	cacheTTL time.Duration
	logger   *zap.Logger
	metrics  ListingMetrics

	eventPublisher shared.EventPublisher

	// generation increments on every fetch; a fetch only installs its
	// snapshot while its generation is still the newest, so a slow fetch
	// can never overwrite a fresher one.
	generation atomic.Uint64
}

// NewListingService creates a new listing service
func NewListingService(jobRepo domain.JobRepository, cache domain.SnapshotCache, logger *zap.Logger) *ListingService {
	return &ListingService{
		jobRepo:  jobRepo,
		cache:    cache,
		cacheTTL: DefaultCacheTTL,
		logger:   logger,
	}
}

// SetCacheTTL overrides the snapshot TTL
func (s *ListingService) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

// SetMetrics sets the metrics recorder for listing activity
func (s *ListingService) SetMetrics(metrics ListingMetrics) {
	s.metrics = metrics
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ListingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes all pending domain events from the job
func (s *ListingService) publishDomainEvents(ctx context.Context, job *domain.Job) {
	if s.eventPublisher == nil {
		return
	}
	events := job.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish events (errors are logged by the event bus, not propagated)
	_ = s.eventPublisher.Publish(ctx, events...)
	job.ClearDomainEvents()
}

// List returns one page of listings matching the query. The unfiltered
// default feed comes from the cached snapshot; restricted queries run in
// SQL, since the snapshot is a bounded feed and filtering it would miss
// listings beyond its cap.
func (s *ListingService) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := domain.Filter{
		Search:   query.Search,
		Category: query.Category,
		Type:     query.Type,
		Level:    query.Level,
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	if !filter.IsUnrestricted() {
		return s.listFromRepository(ctx, filter, page, pageSize)
	}

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * pageSize
	if start > len(snapshot.Jobs) {
		start = len(snapshot.Jobs)
	}
	end := start + pageSize
	if end > len(snapshot.Jobs) {
		end = len(snapshot.Jobs)
	}

	return &ListResult{
		Jobs:       NewJobViews(snapshot.Jobs[start:end]),
		Total:      int(snapshot.Total),
		Page:       page,
		PageSize:   pageSize,
		Generation: snapshot.Generation,
		FetchedAt:  snapshot.FetchedAt,
	}, nil
}

// listFromRepository serves a restricted query straight from the
// repository, with the predicates translated to SQL.
func (s *ListingService) listFromRepository(ctx context.Context, filter domain.Filter, page, pageSize int) (*ListResult, error) {
	jobFilter := domain.NewJobFilter().
		WithKeyword(filter.Search).
		WithSelections(filter.Category, filter.Type, filter.Level).
		WithPagination(page, pageSize)

	jobs, total, err := s.jobRepo.FindAll(ctx, jobFilter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Jobs:       NewJobViews(jobs),
		Total:      int(total),
		Page:       page,
		PageSize:   pageSize,
		Generation: s.generation.Load(),
		FetchedAt:  time.Now(),
	}, nil
}

// Refresh discards the cached snapshot state and fetches a new one.
// Concurrent refreshes are safe: only the newest fetch installs.
func (s *ListingService) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	generation := s.generation.Add(1)

	jobs, total, err := s.jobRepo.FindAll(ctx, domain.NewJobFilter().WithPagination(1, SnapshotLimit))
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		Jobs:       jobs,
		Total:      total,
		Generation: generation,
		FetchedAt:  time.Now(),
	}

	// A newer fetch finished while this one ran; serve this result to the
	// caller but leave the cache to the winner.
	if s.generation.Load() != generation {
		s.logger.Debug("Discarding stale listing fetch", zap.Uint64("generation", generation))
		return snapshot, nil
	}

	if err := s.cache.Set(ctx, snapshot, s.cacheTTL); err != nil {
		// A cache write failure costs a refetch, not the response
		s.logger.Warn("Failed to cache listing snapshot", zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.FeedRefreshed(ctx)
	}
	return snapshot, nil
}

// snapshot returns the cached snapshot, fetching when cold
func (s *ListingService) snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snapshot, err := s.cache.Get(ctx)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Listing cache read failed, fetching from repository", zap.Error(err))
	}
	return s.Refresh(ctx)
}

// Get returns a single listing by ID
func (s *ListingService) Get(ctx context.Context, id uuid.UUID) (*JobView, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("JOB_NOT_FOUND", "Job listing not found")
		}
		return nil, err
	}
	return NewJobView(job), nil
}

// Similar returns up to limit other listings from the same category,
// newest first, never including the listing itself.
func (s *ListingService) Similar(ctx context.Context, id uuid.UUID, limit int) ([]*JobView, error) {
	if limit <= 0 {
		limit = 5
	}

	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("JOB_NOT_FOUND", "Job listing not found")
		}
		return nil, err
	}

	// Fetch one extra in case the listing itself is in the result
	candidates, err := s.jobRepo.FindByCategory(ctx, job.Category, limit+1)
	if err != nil {
		return nil, err
	}

	similar := make([]*domain.Job, 0, limit)
	for _, candidate := range candidates {
		if candidate.ID == job.ID {
			continue
		}
		similar = append(similar, candidate)
		if len(similar) == limit {
			break
		}
	}
	return NewJobViews(similar), nil
}

// Create posts a new listing. Posting is idempotent on title and company:
// a duplicate posting is rejected rather than doubled.
func (s *ListingService) Create(ctx context.Context, input CreateJobInput) (*JobView, error) {
	exists, err := s.jobRepo.ExistsByTitleAndCompany(ctx, input.Title, input.Company)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("JOB_ALREADY_POSTED", "An identical posting already exists")
	}

	job, err := domain.NewJob(input.Title, input.Company, input.Location, input.Salary, input.Description)
	if err != nil {
		return nil, err
	}
	if err := job.Classify(input.Category, input.Type, input.Level); err != nil {
		return nil, err
	}
	job.SetDetails(input.Requirements, input.Responsibilities, input.Benefits)
	if input.CompanyLogo != "" {
		if err := job.SetCompanyLogo(input.CompanyLogo); err != nil {
			return nil, err
		}
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		s.logger.Error("Failed to create job listing", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create job listing")
	}

	// The snapshot is stale the moment a listing lands
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate listing snapshot", zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.JobCreated(ctx, job.Category)
	}

	s.publishDomainEvents(ctx, job)

	s.logger.Info("Job listing created",
		zap.String("job_id", job.ID.String()),
		zap.String("title", job.Title),
		zap.String("company", job.Company))
	return NewJobView(job), nil
}
