package identity

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/jobseeker/backend/internal/domain/identity"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// UserInfo contains the profile information returned with a session
type UserInfo struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Avatar     string    `json:"avatar,omitempty"`
	ResumeURL  string    `json:"resume_url,omitempty"`
	ResumeName string    `json:"resume_name,omitempty"`
	Skills     []string  `json:"skills"`
}

// NewUserInfo maps a domain user onto the session profile shape
func NewUserInfo(user *domain.User) *UserInfo {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return &UserInfo{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Avatar:     user.Avatar,
		ResumeURL:  user.ResumeURL,
		ResumeName: user.ResumeName,
		Skills:     skills,
	}
}

// SessionResult is the single response shape for register, login, and
// session restore. Register and login always carry a full profile; a
// restored session may be degraded.
type SessionResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  *UserInfo
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID     uuid.UUID
	AccessJTI  string
	AccessTTL  time.Duration
	RefreshJTI string
	RefreshTTL time.Duration
}

// SessionInput identifies the caller of a session restore, taken from
// validated access token claims.
type SessionInput struct {
	UserID uuid.UUID
	Email  string
}

// SessionInfo is the result of a session restore. Degraded is set when
// the token is valid but the profile could not be read; the client keeps
// the session and retries the profile later.
type SessionInfo struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	User     *UserInfo `json:"user,omitempty"`
	Degraded bool      `json:"degraded"`
}

// UpdateProfileInput contains the input for profile updates
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   string
	Phone  string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}
