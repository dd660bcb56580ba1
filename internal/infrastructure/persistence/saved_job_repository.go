package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/activity"
	"github.com/jobseeker/backend/internal/domain/shared"
	"github.com/jobseeker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSavedJobRepository implements SavedJobRepository using GORM
type GormSavedJobRepository struct {
	db *gorm.DB
}

// NewGormSavedJobRepository creates a new GormSavedJobRepository
func NewGormSavedJobRepository(db *gorm.DB) *GormSavedJobRepository {
	return &GormSavedJobRepository{db: db}
}

// Create creates a bookmark
func (r *GormSavedJobRepository) Create(ctx context.Context, savedJob *activity.SavedJob) error {
	model := models.SavedJobModelFromDomain(savedJob)
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes a bookmark by its composite key
func (r *GormSavedJobRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.SavedJobModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a bookmark by its composite key
func (r *GormSavedJobRepository) FindByID(ctx context.Context, id string) (*activity.SavedJob, error) {
	var model models.SavedJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns a user's bookmarks, newest first
func (r *GormSavedJobRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*activity.SavedJob, error) {
	var savedModels []*models.SavedJobModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&savedModels).Error; err != nil {
		return nil, err
	}

	savedJobs := make([]*activity.SavedJob, len(savedModels))
	for i, model := range savedModels {
		savedJobs[i] = model.ToDomain()
	}
	return savedJobs, nil
}

// ExistsByUserAndJob reports whether the user bookmarked the job
func (r *GormSavedJobRepository) ExistsByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedJobModel{}).
		Where("id = ?", activity.CompositeID(userID, jobID)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
