package models

import (
	"time"

	"github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
)

// JobModel is the persistence model for the Job domain entity.
type JobModel struct {
	AggregateModel
	Title            string     `gorm:"type:varchar(200);not null;index:idx_jobs_title_company,unique"`
	Company          string     `gorm:"type:varchar(200);not null;index:idx_jobs_title_company,unique"`
	Location         string     `gorm:"type:varchar(200)"`
	Salary           string     `gorm:"type:varchar(100)"`
	Description      string     `gorm:"type:text"`
	Category         string     `gorm:"type:varchar(50);not null;index"`
	Type             string     `gorm:"type:varchar(50);index"`
	Level            string     `gorm:"type:varchar(50);index"`
	Requirements     StringList `gorm:"type:jsonb;default:'[]'"`
	Responsibilities StringList `gorm:"type:jsonb;default:'[]'"`
	Benefits         StringList `gorm:"type:jsonb;default:'[]'"`
	CompanyLogo      string     `gorm:"type:varchar(500)"`
	PostedAt         time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (JobModel) TableName() string {
	return "jobs"
}

// ToDomain converts the persistence model to a domain Job entity.
func (m *JobModel) ToDomain() *listing.Job {
	job := &listing.Job{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Title:            m.Title,
		Company:          m.Company,
		Location:         m.Location,
		Salary:           m.Salary,
		Description:      m.Description,
		Category:         m.Category,
		Type:             m.Type,
		Level:            m.Level,
		Requirements:     []string(m.Requirements),
		Responsibilities: []string(m.Responsibilities),
		Benefits:         []string(m.Benefits),
		CompanyLogo:      m.CompanyLogo,
		PostedAt:         m.PostedAt,
	}
	return job
}

// FromDomain populates the persistence model from a domain Job entity.
func (m *JobModel) FromDomain(j *listing.Job) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.Title = j.Title
	m.Company = j.Company
	m.Location = j.Location
	m.Salary = j.Salary
	m.Description = j.Description
	m.Category = j.Category
	m.Type = j.Type
	m.Level = j.Level
	m.Requirements = StringList(j.Requirements)
	m.Responsibilities = StringList(j.Responsibilities)
	m.Benefits = StringList(j.Benefits)
	m.CompanyLogo = j.CompanyLogo
	m.PostedAt = j.PostedAt
}

// JobModelFromDomain creates a new persistence model from a domain Job entity.
func JobModelFromDomain(j *listing.Job) *JobModel {
	m := &JobModel{}
	m.FromDomain(j)
	return m
}
