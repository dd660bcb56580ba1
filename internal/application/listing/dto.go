package listing

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/jobseeker/backend/internal/domain/listing"
)

// ListQuery contains the query options for listing jobs
type ListQuery struct {
	Search   string
	Category string
	Type     string
	Level    string
	Page     int
	PageSize int
}

// JobView is the read shape for a single listing
type JobView struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Salary           string    `json:"salary"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Type             string    `json:"type"`
	Level            string    `json:"level"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	Benefits         []string  `json:"benefits"`
	CompanyLogo      string    `json:"company_logo,omitempty"`
	PostedAt         time.Time `json:"posted_at"`
}

// NewJobView maps a domain job onto the read shape
func NewJobView(job *domain.Job) *JobView {
	return &JobView{
		ID:               job.ID,
		Title:            job.Title,
		Company:          job.Company,
		Location:         job.Location,
		Salary:           job.Salary,
		Description:      job.Description,
		Category:         job.Category,
		Type:             job.Type,
		Level:            job.Level,
		Requirements:     emptyIfNil(job.Requirements),
		Responsibilities: emptyIfNil(job.Responsibilities),
		Benefits:         emptyIfNil(job.Benefits),
		CompanyLogo:      job.CompanyLogo,
		PostedAt:         job.PostedAt,
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// NewJobViews maps a slice of domain jobs
func NewJobViews(jobs []*domain.Job) []*JobView {
	views := make([]*JobView, len(jobs))
	for i, job := range jobs {
		views[i] = NewJobView(job)
	}
	return views
}

// ListResult contains one page of filtered listings
type ListResult struct {
	Jobs       []*JobView `json:"jobs"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	Generation uint64     `json:"generation"`
	FetchedAt  time.Time  `json:"fetched_at"`
}

// CreateJobInput contains the input for posting a listing
type CreateJobInput struct {
	Title            string
	Company          string
	Location         string
	Salary           string
	Description      string
	Category         string
	Type             string
	Level            string
	Requirements     []string
	Responsibilities []string
	Benefits         []string
	CompanyLogo      string
}

// SalaryInsight compares a listing's pay against the market sample
type SalaryInsight struct {
	JobID         uuid.UUID               `json:"job_id"`
	Comparison    domain.SalaryComparison `json:"comparison"`
	JobMidpoint   string                  `json:"job_midpoint"`
	MarketAverage string                  `json:"market_average"`
	SampleSize    int                     `json:"sample_size"`
}
