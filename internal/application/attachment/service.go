package attachment

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/identity"
	"github.com/jobseeker/backend/internal/domain/shared"
)

// AllowedResumeContentTypes defines the whitelist of content types accepted
// for resume uploads. Executables and scripts are rejected by omission.
var AllowedResumeContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// AllowedImageContentTypes defines the whitelist of content types accepted
// for profile picture uploads.
// SECURITY: SVG files are explicitly NOT allowed due to XSS risk (can contain
// <script> tags and inline event handlers like onload, onerror, etc.)
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStorageService defines the interface for object storage operations
// This interface is implemented by the infrastructure layer (S3-compatible backends)
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	// Returns the upload URL and expiration time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ServiceConfig holds configuration for the attachment service
type ServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// UploadTicket is a presigned upload grant handed to the client
type UploadTicket struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Service handles resume and profile picture storage operations
type Service struct {
	userRepo identity.UserRepository
	storage  ObjectStorageService
	config   ServiceConfig
}

// NewService creates a new attachment Service
func NewService(userRepo identity.UserRepository, storage ObjectStorageService) *Service {
	return &Service{
		userRepo: userRepo,
		storage:  storage,
		config:   DefaultServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *Service) SetConfig(config ServiceConfig) {
	s.config = config
}

// ResumeKey builds the storage key for a user's resume
func ResumeKey(userID uuid.UUID, fileName string) string {
	return "resumes/" + userID.String() + "/" + fileName
}

// AvatarKey builds the storage key for a user's profile picture.
// One object per user; a new upload replaces the previous picture.
func AvatarKey(userID uuid.UUID) string {
	return "profilePics/" + userID.String()
}

// sanitizeFileName strips any path components and rejects empty names
func sanitizeFileName(fileName string) (string, error) {
	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		return "", shared.NewDomainError("INVALID_FILE_NAME", "File name is invalid")
	}
	if len(name) > 255 {
		return "", shared.NewDomainError("INVALID_FILE_NAME", "File name is too long")
	}
	return name, nil
}

// InitiateResumeUpload validates the request and returns a presigned upload URL.
// The resume is attached to the profile only after ConfirmResumeUpload.
func (s *Service) InitiateResumeUpload(ctx context.Context, userID uuid.UUID, fileName, contentType string) (*UploadTicket, error) {
	if !AllowedResumeContentTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Resume must be a PDF, Word document, or plain text file")
	}

	name, err := sanitizeFileName(fileName)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	key := ResumeKey(userID, name)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &UploadTicket{
		UploadURL:  url,
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmResumeUpload verifies the object landed in storage and attaches it
// to the user's profile.
func (s *Service) ConfirmResumeUpload(ctx context.Context, userID uuid.UUID, fileName string) (*identity.User, error) {
	name, err := sanitizeFileName(fileName)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	key := ResumeKey(userID, name)
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Uploaded file not found in storage")
	}

	// Replacing a resume leaves the old object in place; keys include the
	// file name so a rename does not orphan the profile reference.
	if user.HasResume() && user.ResumeURL != key {
		if err := s.storage.DeleteObject(ctx, user.ResumeURL); err != nil {
			return nil, err
		}
	}

	if err := user.SetResume(key, name); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResumeDownloadURL returns a presigned download URL for the user's resume
func (s *Service) ResumeDownloadURL(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", time.Time{}, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return "", time.Time{}, err
	}
	if !user.HasResume() {
		return "", time.Time{}, shared.NewDomainError("RESUME_NOT_FOUND", "User has no resume on file")
	}

	return s.storage.GenerateDownloadURL(ctx, user.ResumeURL, s.config.DownloadURLExpiry)
}

// DeleteResume removes the stored resume and clears it from the profile
func (s *Service) DeleteResume(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return err
	}
	if !user.HasResume() {
		return shared.NewDomainError("RESUME_NOT_FOUND", "User has no resume on file")
	}

	if err := s.storage.DeleteObject(ctx, user.ResumeURL); err != nil {
		return err
	}

	user.ClearResume()
	return s.userRepo.Update(ctx, user)
}

// InitiateAvatarUpload validates the request and returns a presigned upload URL
// for the user's profile picture.
func (s *Service) InitiateAvatarUpload(ctx context.Context, userID uuid.UUID, contentType string) (*UploadTicket, error) {
	if !AllowedImageContentTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Profile picture must be a JPEG, PNG, GIF, or WebP image")
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	key := AvatarKey(userID)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &UploadTicket{
		UploadURL:  url,
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmAvatarUpload verifies the object landed in storage and attaches it
// to the user's profile.
func (s *Service) ConfirmAvatarUpload(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	key := AvatarKey(userID)
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Uploaded file not found in storage")
	}

	if err := user.SetAvatar(key); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AvatarDownloadURL returns a presigned download URL for the user's profile picture
func (s *Service) AvatarDownloadURL(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", time.Time{}, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return "", time.Time{}, err
	}
	if user.Avatar == "" {
		return "", time.Time{}, shared.NewDomainError("AVATAR_NOT_FOUND", "User has no profile picture")
	}

	return s.storage.GenerateDownloadURL(ctx, user.Avatar, s.config.DownloadURLExpiry)
}
