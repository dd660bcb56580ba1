package models

import (
	"github.com/jobseeker/backend/internal/domain/identity"
	"github.com/jobseeker/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone        string     `gorm:"type:varchar(50)"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Avatar       string     `gorm:"type:varchar(500)"`
	ResumeURL    string     `gorm:"type:varchar(500)"`
	ResumeName   string     `gorm:"type:varchar(255)"`
	Skills       StringList `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Avatar:       m.Avatar,
		ResumeURL:    m.ResumeURL,
		ResumeName:   m.ResumeName,
		Skills:       []string(m.Skills),
	}
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Avatar = u.Avatar
	m.ResumeURL = u.ResumeURL
	m.ResumeName = u.ResumeName
	m.Skills = StringList(u.Skills)
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
