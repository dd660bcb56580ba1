package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// PreferenceService handles per-user UI preferences
type PreferenceService struct {
	store  identity.PreferenceStore
	logger *zap.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(store identity.PreferenceStore, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{
		store:  store,
		logger: logger,
	}
}

// GetTheme returns the user's theme. Store failures degrade to the
// default theme so a preference outage never blocks the app.
func (s *PreferenceService) GetTheme(ctx context.Context, userID uuid.UUID) identity.Theme {
	theme, err := s.store.GetTheme(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to read theme preference, using default",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return identity.ThemeLight
	}
	return theme
}

// SetTheme validates and stores the user's theme
func (s *PreferenceService) SetTheme(ctx context.Context, userID uuid.UUID, theme string) (identity.Theme, error) {
	parsed, err := identity.ParseTheme(theme)
	if err != nil {
		return "", err
	}

	if err := s.store.SetTheme(ctx, userID, parsed); err != nil {
		s.logger.Error("Failed to store theme preference",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return "", err
	}
	return parsed, nil
}
