package activity

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/jobseeker/backend/internal/domain/activity"
)

// ApplicationView is the read shape for one application
type ApplicationView struct {
	ID        string                   `json:"id"`
	UserID    uuid.UUID                `json:"user_id"`
	JobID     uuid.UUID                `json:"job_id"`
	JobTitle  string                   `json:"job_title"`
	Company   string                   `json:"company"`
	Status    domain.ApplicationStatus `json:"status"`
	AppliedAt time.Time                `json:"applied_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// NewApplicationView maps a domain application onto the read shape
func NewApplicationView(application *domain.Application) *ApplicationView {
	return &ApplicationView{
		ID:        application.ID,
		UserID:    application.UserID,
		JobID:     application.JobID,
		JobTitle:  application.JobTitle,
		Company:   application.Company,
		Status:    application.Status,
		AppliedAt: application.AppliedAt,
		UpdatedAt: application.UpdatedAt,
	}
}

// NewApplicationViews maps a slice of domain applications
func NewApplicationViews(applications []*domain.Application) []*ApplicationView {
	views := make([]*ApplicationView, len(applications))
	for i, application := range applications {
		views[i] = NewApplicationView(application)
	}
	return views
}

// ApplicationStats summarizes a user's pipeline
type ApplicationStats struct {
	Total    int64                              `json:"total"`
	ByStatus map[domain.ApplicationStatus]int64 `json:"by_status"`
}

// SavedJobView is the read shape for one bookmark
type SavedJobView struct {
	ID       string    `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	JobID    uuid.UUID `json:"job_id"`
	JobTitle string    `json:"job_title"`
	Company  string    `json:"company"`
	SavedAt  time.Time `json:"saved_at"`
}

// NewSavedJobView maps a domain bookmark onto the read shape
func NewSavedJobView(savedJob *domain.SavedJob) *SavedJobView {
	return &SavedJobView{
		ID:       savedJob.ID,
		UserID:   savedJob.UserID,
		JobID:    savedJob.JobID,
		JobTitle: savedJob.JobTitle,
		Company:  savedJob.Company,
		SavedAt:  savedJob.SavedAt,
	}
}

// NewSavedJobViews maps a slice of domain bookmarks
func NewSavedJobViews(savedJobs []*domain.SavedJob) []*SavedJobView {
	views := make([]*SavedJobView, len(savedJobs))
	for i, savedJob := range savedJobs {
		views[i] = NewSavedJobView(savedJob)
	}
	return views
}

// ToggleResult reports the bookmark state after a toggle
type ToggleResult struct {
	JobID uuid.UUID `json:"job_id"`
	Saved bool      `json:"saved"`
}
