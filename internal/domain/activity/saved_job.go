package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/shared"
)

// SavedJob is a bookmark on a listing. Same composite key scheme as
// Application; a bookmark is created or deleted, never updated.
type SavedJob struct {
	ID       string
	UserID   uuid.UUID
	JobID    uuid.UUID
	JobTitle string
	Company  string
	SavedAt  time.Time
}

// NewSavedJob creates a bookmark for a job
func NewSavedJob(userID, jobID uuid.UUID, jobTitle, company string) (*SavedJob, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB_ID", "Job ID cannot be empty")
	}

	return &SavedJob{
		ID:       CompositeID(userID, jobID),
		UserID:   userID,
		JobID:    jobID,
		JobTitle: jobTitle,
		Company:  company,
		SavedAt:  time.Now(),
	}, nil
}
