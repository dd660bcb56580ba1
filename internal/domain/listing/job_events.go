package listing

import (
	"github.com/jobseeker/backend/internal/domain/shared"
)

// Aggregate type constant for Job
const AggregateTypeJob = "Job"

// Job domain event types
const (
	EventTypeJobPosted = "JobPosted"
)

// JobPostedEvent is published when a listing goes live
type JobPostedEvent struct {
	shared.BaseDomainEvent
	Title    string `json:"title"`
	Company  string `json:"company"`
	Category string `json:"category,omitempty"`
}

// NewJobPostedEvent creates a new JobPostedEvent
func NewJobPostedEvent(job *Job) *JobPostedEvent {
	return &JobPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobPosted, AggregateTypeJob, job.ID),
		Title:           job.Title,
		Company:         job.Company,
		Category:        job.Category,
	}
}
