package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/shared"
)

// ApplicationStatus tracks where an application sits in the hiring pipeline
type ApplicationStatus string

const (
	StatusPending      ApplicationStatus = "pending"
	StatusReviewing    ApplicationStatus = "reviewing"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusDecision     ApplicationStatus = "decision"
	StatusAccepted     ApplicationStatus = "accepted"
	StatusRejected     ApplicationStatus = "rejected"
)

// statusOrder drives forward-only pipeline transitions
var statusOrder = map[ApplicationStatus]int{
	StatusPending:      0,
	StatusReviewing:    1,
	StatusInterviewing: 2,
	StatusDecision:     3,
	StatusAccepted:     4,
	StatusRejected:     4,
}

// Application represents one user's application to one job. The record
// is keyed by the user/job pair, so a second apply to the same job is
// structurally impossible. Job title and company are denormalized at
// apply time so the list screen never joins against listings.
type Application struct {
	ID        string
	UserID    uuid.UUID
	JobID     uuid.UUID
	JobTitle  string
	Company   string
	Status    ApplicationStatus
	AppliedAt time.Time
	UpdatedAt time.Time
}

// CompositeID builds the record key for a user/job pair
func CompositeID(userID, jobID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", userID, jobID)
}

// NewApplication creates a pending application for a job
func NewApplication(userID, jobID uuid.UUID, jobTitle, company string) (*Application, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB_ID", "Job ID cannot be empty")
	}

	now := time.Now()
	return &Application{
		ID:        CompositeID(userID, jobID),
		UserID:    userID,
		JobID:     jobID,
		JobTitle:  jobTitle,
		Company:   company,
		Status:    StatusPending,
		AppliedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetStatus moves the application through the pipeline. Terminal
// statuses never change, and the pipeline only moves forward.
func (a *Application) SetStatus(status ApplicationStatus) error {
	next, known := statusOrder[status]
	if !known {
		return shared.NewDomainError("INVALID_STATUS", "Unknown application status")
	}
	if a.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Application already reached a final decision")
	}
	if next < statusOrder[a.Status] {
		return shared.NewDomainError("INVALID_STATE", "Application status cannot move backwards")
	}

	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

// IsTerminal reports whether the application reached a final decision
func (a *Application) IsTerminal() bool {
	return a.Status == StatusAccepted || a.Status == StatusRejected
}

// ParseStatus validates a status string from the outside world
func ParseStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(s)
	if _, ok := statusOrder[status]; !ok {
		return "", shared.NewDomainError("INVALID_STATUS", "Unknown application status")
	}
	return status, nil
}
