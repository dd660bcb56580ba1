package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/shared"
)

// Theme is a UI color scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme string from the outside world
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", shared.NewDomainError("INVALID_THEME", "Theme must be light or dark")
}

// PreferenceStore holds per-user UI preferences. Preferences are
// convenience state, not business data, so they live outside the
// primary store and lost entries fall back to defaults.
type PreferenceStore interface {
	// GetTheme returns the user's theme, ThemeLight when unset.
	GetTheme(ctx context.Context, userID uuid.UUID) (Theme, error)

	// SetTheme stores the user's theme.
	SetTheme(ctx context.Context, userID uuid.UUID, theme Theme) error
}
