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

// GormApplicationRepository implements ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new application
func (r *GormApplicationRepository) Create(ctx context.Context, application *activity.Application) error {
	model := models.ApplicationModelFromDomain(application)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateStatus persists a status change
func (r *GormApplicationRepository) UpdateStatus(ctx context.Context, application *activity.Application) error {
	result := r.db.WithContext(ctx).
		Model(&models.ApplicationModel{}).
		Where("id = ?", application.ID).
		Updates(map[string]interface{}{
			"status":     application.Status,
			"updated_at": application.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an application by its composite key
func (r *GormApplicationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.ApplicationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an application by its composite key
func (r *GormApplicationRepository) FindByID(ctx context.Context, id string) (*activity.Application, error) {
	var model models.ApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns a user's applications, newest first
func (r *GormApplicationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*activity.Application, error) {
	var appModels []*models.ApplicationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&appModels).Error; err != nil {
		return nil, err
	}

	applications := make([]*activity.Application, len(appModels))
	for i, model := range appModels {
		applications[i] = model.ToDomain()
	}
	return applications, nil
}

// ExistsByUserAndJob reports whether the user already applied to the job
func (r *GormApplicationRepository) ExistsByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ApplicationModel{}).
		Where("id = ?", activity.CompositeID(userID, jobID)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatus returns per-status counts for a user's applications
func (r *GormApplicationRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[activity.ApplicationStatus]int64, error) {
	type statusCount struct {
		Status activity.ApplicationStatus
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.ApplicationModel{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[activity.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
