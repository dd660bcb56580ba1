package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/activity"
)

// ApplicationModel is the persistence model for the Application domain entity.
// The primary key is the user/job composite, not a generated UUID, so one
// user can hold at most one application per job.
type ApplicationModel struct {
	ID        string                     `gorm:"type:varchar(80);primary_key"`
	UserID    uuid.UUID                  `gorm:"type:uuid;not null;index"`
	JobID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	JobTitle  string                     `gorm:"type:varchar(200);not null"`
	Company   string                     `gorm:"type:varchar(200);not null"`
	Status    activity.ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	AppliedAt time.Time                  `gorm:"not null;index"`
	UpdatedAt time.Time                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ApplicationModel) TableName() string {
	return "applications"
}

// ToDomain converts the persistence model to a domain Application entity.
func (m *ApplicationModel) ToDomain() *activity.Application {
	return &activity.Application{
		ID:        m.ID,
		UserID:    m.UserID,
		JobID:     m.JobID,
		JobTitle:  m.JobTitle,
		Company:   m.Company,
		Status:    m.Status,
		AppliedAt: m.AppliedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Application entity.
func (m *ApplicationModel) FromDomain(a *activity.Application) {
	m.ID = a.ID
	m.UserID = a.UserID
	m.JobID = a.JobID
	m.JobTitle = a.JobTitle
	m.Company = a.Company
	m.Status = a.Status
	m.AppliedAt = a.AppliedAt
	m.UpdatedAt = a.UpdatedAt
}

// ApplicationModelFromDomain creates a new persistence model from a domain Application entity.
func ApplicationModelFromDomain(a *activity.Application) *ApplicationModel {
	m := &ApplicationModel{}
	m.FromDomain(a)
	return m
}

// SavedJobModel is the persistence model for the SavedJob domain entity.
// Same composite key scheme as ApplicationModel.
type SavedJobModel struct {
	ID       string    `gorm:"type:varchar(80);primary_key"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	JobID    uuid.UUID `gorm:"type:uuid;not null;index"`
	JobTitle string    `gorm:"type:varchar(200);not null"`
	Company  string    `gorm:"type:varchar(200);not null"`
	SavedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SavedJobModel) TableName() string {
	return "saved_jobs"
}

// ToDomain converts the persistence model to a domain SavedJob entity.
func (m *SavedJobModel) ToDomain() *activity.SavedJob {
	return &activity.SavedJob{
		ID:       m.ID,
		UserID:   m.UserID,
		JobID:    m.JobID,
		JobTitle: m.JobTitle,
		Company:  m.Company,
		SavedAt:  m.SavedAt,
	}
}

// FromDomain populates the persistence model from a domain SavedJob entity.
func (m *SavedJobModel) FromDomain(s *activity.SavedJob) {
	m.ID = s.ID
	m.UserID = s.UserID
	m.JobID = s.JobID
	m.JobTitle = s.JobTitle
	m.Company = s.Company
	m.SavedAt = s.SavedAt
}

// SavedJobModelFromDomain creates a new persistence model from a domain SavedJob entity.
func SavedJobModelFromDomain(s *activity.SavedJob) *SavedJobModel {
	m := &SavedJobModel{}
	m.FromDomain(s)
	return m
}
