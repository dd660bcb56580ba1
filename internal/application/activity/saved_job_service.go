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

// SavedJobService handles listing bookmarks
type SavedJobService struct {
	savedJobRepo domain.SavedJobRepository
	jobRepo      listing.JobRepository
	logger       *zap.Logger
}

// NewSavedJobService creates a new saved job service
func NewSavedJobService(savedJobRepo domain.SavedJobRepository, jobRepo listing.JobRepository, logger *zap.Logger) *SavedJobService {
	return &SavedJobService{
		savedJobRepo: savedJobRepo,
		jobRepo:      jobRepo,
		logger:       logger,
	}
}

// Toggle bookmarks a listing, or removes the bookmark when one exists
func (s *SavedJobService) Toggle(ctx context.Context, userID, jobID uuid.UUID) (*ToggleResult, error) {
	saved, err := s.savedJobRepo.ExistsByUserAndJob(ctx, userID, jobID)
	if err != nil {
		s.logger.Error("Failed to check bookmark", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to toggle bookmark")
	}

	if saved {
		if err := s.savedJobRepo.Delete(ctx, domain.CompositeID(userID, jobID)); err != nil && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to remove bookmark", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to toggle bookmark")
		}
		return &ToggleResult{JobID: jobID, Saved: false}, nil
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("JOB_NOT_FOUND", "Job listing not found")
		}
		return nil, err
	}

	savedJob, err := domain.NewSavedJob(userID, jobID, job.Title, job.Company)
	if err != nil {
		return nil, err
	}
	if err := s.savedJobRepo.Create(ctx, savedJob); err != nil {
		s.logger.Error("Failed to create bookmark", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to toggle bookmark")
	}

	return &ToggleResult{JobID: jobID, Saved: true}, nil
}

// ListMine returns a user's bookmarks, newest first
func (s *SavedJobService) ListMine(ctx context.Context, userID uuid.UUID) ([]*SavedJobView, error) {
	savedJobs, err := s.savedJobRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list bookmarks", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list bookmarks")
	}
	return NewSavedJobViews(savedJobs), nil
}

// IsSaved reports whether the user bookmarked the job
func (s *SavedJobService) IsSaved(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	return s.savedJobRepo.ExistsByUserAndJob(ctx, userID, jobID)
}
