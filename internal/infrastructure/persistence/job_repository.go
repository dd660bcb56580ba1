package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
	"github.com/jobseeker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job listing
func (r *GormJobRepository) Create(ctx context.Context, job *listing.Job) error {
	model := models.JobModelFromDomain(job)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing job listing
func (r *GormJobRepository) Update(ctx context.Context, job *listing.Job) error {
	model := models.JobModelFromDomain(job)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a job listing by ID
func (r *GormJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.JobModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a job listing by ID
func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns listings matching the filter with a total count
func (r *GormJobRepository) FindAll(ctx context.Context, filter listing.JobFilter) ([]*listing.Job, int64, error) {
	var jobModels []*models.JobModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.JobModel{})
	query = r.applyFilter(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := ValidateSortField(filter.SortBy, JobSortFields, "posted_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)
	query = query.Order(sortBy + " " + sortOrder)

	if err := query.
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&jobModels).Error; err != nil {
		return nil, 0, err
	}

	jobs := make([]*listing.Job, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = model.ToDomain()
	}
	return jobs, total, nil
}

// applyFilter translates the domain filter into SQL predicates. The "All"
// sentinel and the empty string both mean no restriction, matching the
// in-memory filter semantics.
func (r *GormJobRepository) applyFilter(query *gorm.DB, filter listing.JobFilter) *gorm.DB {
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Category != "" && filter.Category != listing.FilterAll {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Type != "" && filter.Type != listing.FilterAll {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Level != "" && filter.Level != listing.FilterAll {
		query = query.Where("level = ?", filter.Level)
	}
	return query
}

// FindByCategory returns up to limit listings in a category, newest first
func (r *GormJobRepository) FindByCategory(ctx context.Context, category string, limit int) ([]*listing.Job, error) {
	if limit <= 0 {
		limit = 10
	}
	var jobModels []*models.JobModel
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("posted_at DESC").
		Limit(limit).
		Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]*listing.Job, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = model.ToDomain()
	}
	return jobs, nil
}

// ExistsByTitleAndCompany reports whether an identical posting exists
func (r *GormJobRepository) ExistsByTitleAndCompany(ctx context.Context, title, company string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobModel{}).
		Where("LOWER(title) = ? AND LOWER(company) = ?", strings.ToLower(title), strings.ToLower(company)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of listings
func (r *GormJobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.JobModel{}).Count(&count).Error
	return count, err
}
