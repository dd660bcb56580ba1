package identity

import (
	"github.com/jobseeker/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered      = "UserRegistered"
	EventTypeUserPasswordChanged = "UserPasswordChanged"
	EventTypeUserResumeUpdated   = "UserResumeUpdated"
)

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Name:            user.Name,
		Email:           user.Email,
	}
}

// UserPasswordChangedEvent is published when a user's password is changed
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, AggregateTypeUser, user.ID),
		Email:           user.Email,
	}
}

// UserResumeUpdatedEvent is published when a resume is uploaded or replaced
type UserResumeUpdatedEvent struct {
	shared.BaseDomainEvent
	ResumeName string `json:"resume_name"`
}

// NewUserResumeUpdatedEvent creates a new UserResumeUpdatedEvent
func NewUserResumeUpdatedEvent(user *User) *UserResumeUpdatedEvent {
	return &UserResumeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserResumeUpdated, AggregateTypeUser, user.ID),
		ResumeName:      user.ResumeName,
	}
}
