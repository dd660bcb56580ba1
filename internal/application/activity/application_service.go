package activity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domain "github.com/jobseeker/backend/internal/domain/activity"
	"github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ApplicationMetrics receives application activity events for metrics collection.
type ApplicationMetrics interface {
	ApplicationSubmitted(ctx context.Context, jobCategory string)
}

// ApplicationService handles the job application workflow
type ApplicationService struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         listing.JobRepository
	logger          *zap.Logger
	metrics         ApplicationMetrics
}

// NewApplicationService creates a new application service
func NewApplicationService(applicationRepo domain.ApplicationRepository, jobRepo listing.JobRepository, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		logger:          logger,
	}
}

// SetMetrics sets the metrics recorder for application activity
func (s *ApplicationService) SetMetrics(metrics ApplicationMetrics) {
	s.metrics = metrics
}

// Apply submits an application for a listing. One application per
// user/job pair; the job title and company are captured at apply time.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID uuid.UUID) (*ApplicationView, error) {
	exists, err := s.applicationRepo.ExistsByUserAndJob(ctx, userID, jobID)
	if err != nil {
		s.logger.Error("Failed to check for existing application", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit application")
	}
	if exists {
		return nil, shared.ErrAlreadyApplied
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("JOB_NOT_FOUND", "Job listing not found")
		}
		return nil, err
	}

	application, err := domain.NewApplication(userID, jobID, job.Title, job.Company)
	if err != nil {
		return nil, err
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		s.logger.Error("Failed to create application",
			zap.String("user_id", userID.String()),
			zap.String("job_id", jobID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit application")
	}

	if s.metrics != nil {
		s.metrics.ApplicationSubmitted(ctx, job.Category)
	}

	s.logger.Info("Application submitted",
		zap.String("application_id", application.ID),
		zap.String("job_title", application.JobTitle))
	return NewApplicationView(application), nil
}

// Withdraw removes a user's application to a job
func (s *ApplicationService) Withdraw(ctx context.Context, userID, jobID uuid.UUID) error {
	id := domain.CompositeID(userID, jobID)
	if err := s.applicationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found")
		}
		s.logger.Error("Failed to withdraw application", zap.String("application_id", id), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to withdraw application")
	}

	s.logger.Info("Application withdrawn", zap.String("application_id", id))
	return nil
}

// ListMine returns a user's applications, newest first
func (s *ApplicationService) ListMine(ctx context.Context, userID uuid.UUID) ([]*ApplicationView, error) {
	applications, err := s.applicationRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list applications", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list applications")
	}
	return NewApplicationViews(applications), nil
}

// HasApplied reports whether the user already applied to the job
func (s *ApplicationService) HasApplied(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	return s.applicationRepo.ExistsByUserAndJob(ctx, userID, jobID)
}

// Stats summarizes a user's application pipeline by status
func (s *ApplicationService) Stats(ctx context.Context, userID uuid.UUID) (*ApplicationStats, error) {
	counts, err := s.applicationRepo.CountByStatus(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count applications", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute application stats")
	}

	stats := &ApplicationStats{ByStatus: counts}
	for _, count := range counts {
		stats.Total += count
	}
	return stats, nil
}

// UpdateStatus advances an application along the hiring pipeline.
// Transitions are forward only and stop at accepted or rejected.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status string) (*ApplicationView, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found")
		}
		return nil, err
	}

	if err := application.SetStatus(parsed); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.UpdateStatus(ctx, application); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found")
		}
		s.logger.Error("Failed to update application status", zap.String("application_id", id), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application status")
	}

	s.logger.Info("Application status updated",
		zap.String("application_id", id),
		zap.String("status", string(parsed)))
	return NewApplicationView(application), nil
}
