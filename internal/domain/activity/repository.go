package activity

import (
	"context"

	"github.com/google/uuid"
)

// ApplicationRepository defines the interface for application persistence
type ApplicationRepository interface {
	// Create creates a new application
	Create(ctx context.Context, application *Application) error

	// UpdateStatus persists a status change
	UpdateStatus(ctx context.Context, application *Application) error

	// Delete removes an application (withdraw)
	Delete(ctx context.Context, id string) error

	// FindByID finds an application by its composite key
	FindByID(ctx context.Context, id string) (*Application, error)

	// FindByUser returns a user's applications, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Application, error)

	// ExistsByUserAndJob reports whether the user already applied to the job
	ExistsByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error)

	// CountByStatus returns per-status counts for a user's applications
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[ApplicationStatus]int64, error)
}

// SavedJobRepository defines the interface for bookmark persistence
type SavedJobRepository interface {
	// Create creates a bookmark
	Create(ctx context.Context, savedJob *SavedJob) error

	// Delete removes a bookmark by its composite key
	Delete(ctx context.Context, id string) error

	// FindByID finds a bookmark by its composite key
	FindByID(ctx context.Context, id string) (*SavedJob, error)

	// FindByUser returns a user's bookmarks, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*SavedJob, error)

	// ExistsByUserAndJob reports whether the user bookmarked the job
	ExistsByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
}
