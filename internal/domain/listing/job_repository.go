package listing

import (
	"context"

	"github.com/google/uuid"
)

// JobRepository defines the interface for job listing persistence
type JobRepository interface {
	// Create creates a new job listing
	Create(ctx context.Context, job *Job) error

	// Update updates an existing job listing
	Update(ctx context.Context, job *Job) error

	// Delete deletes a job listing by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a job listing by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindAll returns listings matching the filter, newest first
	FindAll(ctx context.Context, filter JobFilter) ([]*Job, int64, error)

	// FindByCategory returns up to limit listings in a category, newest first
	FindByCategory(ctx context.Context, category string, limit int) ([]*Job, error)

	// ExistsByTitleAndCompany reports whether an identical posting exists
	ExistsByTitleAndCompany(ctx context.Context, title, company string) (bool, error)

	// Count returns the total number of listings
	Count(ctx context.Context) (int64, error)
}

// JobFilter contains query options for listing jobs
type JobFilter struct {
	// Search keyword matched against title, company, location, description
	Keyword string

	// Category, Type, Level selections; empty or "All" means unrestricted
	Category string
	Type     string
	Level    string

	// Pagination
	Page     int
	PageSize int

	// Sorting; persistence validates against its column whitelist
	SortBy    string
	SortOrder string
}

// NewJobFilter creates a JobFilter with default values
func NewJobFilter() JobFilter {
	return JobFilter{
		Category: FilterAll,
		Type:     FilterAll,
		Level:    FilterAll,
		Page:     1,
		PageSize: 20,
	}
}

// WithKeyword sets the search keyword
func (f JobFilter) WithKeyword(keyword string) JobFilter {
	f.Keyword = keyword
	return f
}

// WithSelections sets the category, type, and level predicates
func (f JobFilter) WithSelections(category, jobType, level string) JobFilter {
	if category != "" {
		f.Category = category
	}
	if jobType != "" {
		f.Type = jobType
	}
	if level != "" {
		f.Level = level
	}
	return f
}

// WithSort sets the sort column and direction
func (f JobFilter) WithSort(sortBy, sortOrder string) JobFilter {
	f.SortBy = sortBy
	f.SortOrder = sortOrder
	return f
}

// WithPagination sets the page and page size
func (f JobFilter) WithPagination(page, pageSize int) JobFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	return f
}

// Unrestricted reports whether no predicate narrows the result
func (f JobFilter) Unrestricted() bool {
	return Filter{
		Search:   f.Keyword,
		Category: f.Category,
		Type:     f.Type,
		Level:    f.Level,
	}.IsUnrestricted()
}

// Offset returns the row offset implied by the page settings
func (f JobFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit()
}

// Limit returns the page size bounded to a sane maximum
func (f JobFilter) Limit() int {
	size := f.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return size
}
