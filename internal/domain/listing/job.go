package listing

import (
	"strings"
	"time"

	"github.com/jobseeker/backend/internal/domain/shared"
)

// Job categories offered by the board. "All" is the filter sentinel,
// not a category a job can carry.
var Categories = []string{
	"Design",
	"Development",
	"Marketing",
	"Finance",
	"Engineering",
	"Sales",
}

// Job represents a published job listing.
// Listings are written by the seed/import path and read by everyone else.
type Job struct {
	shared.BaseAggregateRoot
	Title            string
	Company          string
	Location         string
	Salary           string // free text, e.g. "LKR 100,000 - 150,000"
	Description      string
	Category         string
	Type             string // Full-time, Part-time, Remote, ...
	Level            string // Entry, Junior, Mid-Level, Senior, ...
	Requirements     []string
	Responsibilities []string
	Benefits         []string
	CompanyLogo      string
	PostedAt         time.Time
}

// NewJob creates a new job listing
func NewJob(title, company, location, salary, description string) (*Job, error) {
	title = strings.TrimSpace(title)
	company = strings.TrimSpace(company)

	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if company == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company cannot be empty")
	}
	if len(company) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company cannot exceed 200 characters")
	}

	job := &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Company:           company,
		Location:          strings.TrimSpace(location),
		Salary:            strings.TrimSpace(salary),
		Description:       description,
		Requirements:      make([]string, 0),
		Responsibilities:  make([]string, 0),
		Benefits:          make([]string, 0),
		PostedAt:          time.Now(),
	}

	job.AddDomainEvent(NewJobPostedEvent(job))

	return job, nil
}

// Classify sets the category, type, and level tags
func (j *Job) Classify(category, jobType, level string) error {
	category = strings.TrimSpace(category)
	if category != "" && !IsValidCategory(category) {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown job category")
	}

	j.Category = category
	j.Type = strings.TrimSpace(jobType)
	j.Level = strings.TrimSpace(level)
	j.touch()

	return nil
}

// SetDetails replaces the bullet-point sections of the listing
func (j *Job) SetDetails(requirements, responsibilities, benefits []string) {
	j.Requirements = compact(requirements)
	j.Responsibilities = compact(responsibilities)
	j.Benefits = compact(benefits)
	j.touch()
}

// SetCompanyLogo sets the company logo URL
func (j *Job) SetCompanyLogo(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_LOGO", "Logo URL cannot exceed 500 characters")
	}

	j.CompanyLogo = url
	j.touch()

	return nil
}

// IsValidCategory reports whether the category is one the board knows
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (j *Job) touch() {
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
