package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/jobseeker/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Sri Lankan mobile numbers: +94 or leading 0 followed by nine digits
	phoneRegex = regexp.MustCompile(`^(\+94|0)[0-9]{9}$`)
)

// User represents a job seeker account and profile.
// It is the aggregate root for account and profile operations.
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Avatar       string
	ResumeURL    string
	ResumeName   string
	Skills       []string
}

// NewUser creates a new user with required fields
func NewUser(name, email, phone, password string) (*User, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Phone:             normalizePhone(phone),
		PasswordHash:      passwordHash,
		Skills:            make([]string, 0),
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// UpdateProfile updates the user's basic profile fields. An empty phone
// keeps the current number.
func (u *User) UpdateProfile(name, phone string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if phone != "" {
		if err := ValidatePhone(phone); err != nil {
			return err
		}
		u.Phone = normalizePhone(phone)
	}

	u.Name = strings.TrimSpace(name)
	u.touch()

	return nil
}

// SetAvatar sets the user's profile picture URL
func (u *User) SetAvatar(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL cannot exceed 500 characters")
	}

	u.Avatar = url
	u.touch()

	return nil
}

// SetResume records the uploaded resume's URL and original file name
func (u *User) SetResume(url, fileName string) error {
	if url == "" {
		return shared.NewDomainError("INVALID_RESUME", "Resume URL cannot be empty")
	}
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_RESUME", "Resume URL cannot exceed 500 characters")
	}

	u.ResumeURL = url
	u.ResumeName = strings.TrimSpace(fileName)
	u.touch()

	u.AddDomainEvent(NewUserResumeUpdatedEvent(u))

	return nil
}

// ClearResume removes the resume reference from the profile
func (u *User) ClearResume() {
	u.ResumeURL = ""
	u.ResumeName = ""
	u.touch()
}

// AddSkill appends a skill if not already present (case-insensitive)
func (u *User) AddSkill(skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return shared.NewDomainError("INVALID_SKILL", "Skill cannot be empty")
	}
	if len(skill) > 100 {
		return shared.NewDomainError("INVALID_SKILL", "Skill cannot exceed 100 characters")
	}

	for _, s := range u.Skills {
		if strings.EqualFold(s, skill) {
			return shared.NewDomainError("SKILL_ALREADY_ADDED", "Skill is already on the profile")
		}
	}

	u.Skills = append(u.Skills, skill)
	u.touch()

	return nil
}

// RemoveSkill removes a skill (case-insensitive match)
func (u *User) RemoveSkill(skill string) error {
	skill = strings.TrimSpace(skill)
	for i, s := range u.Skills {
		if strings.EqualFold(s, skill) {
			u.Skills = append(u.Skills[:i], u.Skills[i+1:]...)
			u.touch()
			return nil
		}
	}

	return shared.NewDomainError("SKILL_NOT_FOUND", "Skill is not on the profile")
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one
func (u *User) SetPassword(newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.touch()

	u.AddDomainEvent(NewUserPasswordChangedEvent(u))

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// HasResume reports whether a resume has been uploaded
func (u *User) HasResume() bool {
	return u.ResumeURL != ""
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Validation functions

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

// ValidateEmail checks the email shape before any credential call
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

// ValidatePhone checks a Sri Lankan mobile number, ignoring spaces
func ValidatePhone(phone string) error {
	phone = normalizePhone(phone)
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func normalizePhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
