package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/identity"
	"github.com/jobseeker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles profile operations
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	return NewUserInfo(user), nil
}

// UpdateProfile updates the user's name and phone
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	if err := user.UpdateProfile(input.Name, input.Phone); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	s.logger.Info("Profile updated", zap.String("user_id", user.ID.String()))
	return NewUserInfo(user), nil
}

// AddSkill adds a skill to the user's profile
func (s *UserService) AddSkill(ctx context.Context, userID uuid.UUID, skill string) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	if err := user.AddSkill(skill); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to add skill", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update skills")
	}
	return NewUserInfo(user), nil
}

// RemoveSkill removes a skill from the user's profile
func (s *UserService) RemoveSkill(ctx context.Context, userID uuid.UUID, skill string) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	if err := user.RemoveSkill(skill); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to remove skill", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update skills")
	}
	return NewUserInfo(user), nil
}

// ChangePassword changes the user's password after verifying the old one
func (s *UserService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return err
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// DeleteAccount removes the user's account
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to delete account", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete account")
	}

	s.logger.Info("Account deleted", zap.String("user_id", userID.String()))
	return nil
}
