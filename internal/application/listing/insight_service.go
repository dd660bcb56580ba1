package listing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domain "github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SalaryInsightService compares a listing's pay against the average of
// other listings in its category.
type SalaryInsightService struct {
	jobRepo domain.JobRepository
	logger  *zap.Logger
}

// NewSalaryInsightService creates a new salary insight service
func NewSalaryInsightService(jobRepo domain.JobRepository, logger *zap.Logger) *SalaryInsightService {
	return &SalaryInsightService{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

// Insight computes the salary comparison for a listing. Listings whose
// salary text yields no figure cannot be compared; neither can a listing
// whose category has no other parseable salaries.
func (s *SalaryInsightService) Insight(ctx context.Context, jobID uuid.UUID) (*SalaryInsight, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("JOB_NOT_FOUND", "Job listing not found")
		}
		return nil, err
	}

	midpoint, ok := domain.ParseSalary(job.Salary)
	if !ok {
		return nil, shared.ErrSalaryUnparseable
	}

	sample, err := s.jobRepo.FindByCategory(ctx, job.Category, domain.InsightSampleLimit)
	if err != nil {
		return nil, err
	}

	avg, sampled, ok := domain.MarketAverage(sample)
	if !ok {
		// Cannot happen with a nonempty category since the listing itself
		// parses, but a concurrent delete can empty the sample.
		return nil, shared.ErrSalaryUnparseable
	}

	insight := &SalaryInsight{
		JobID:         job.ID,
		Comparison:    domain.CompareSalary(midpoint, avg),
		JobMidpoint:   midpoint.StringFixed(2),
		MarketAverage: avg.StringFixed(2),
		SampleSize:    sampled,
	}

	s.logger.Debug("Computed salary insight",
		zap.String("job_id", job.ID.String()),
		zap.String("comparison", string(insight.Comparison)),
		zap.Int("sample_size", sampled))
	return insight, nil
}
