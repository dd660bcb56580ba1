package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/identity"
)

// InMemoryPreferenceStore implements PreferenceStore using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryPreferenceStore struct {
	mu     sync.RWMutex
	themes map[uuid.UUID]identity.Theme
}

// NewInMemoryPreferenceStore creates a new in-memory preference store
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		themes: make(map[uuid.UUID]identity.Theme),
	}
}

// GetTheme returns the user's theme, ThemeLight when unset
func (s *InMemoryPreferenceStore) GetTheme(ctx context.Context, userID uuid.UUID) (identity.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if theme, ok := s.themes[userID]; ok {
		return theme, nil
	}
	return identity.ThemeLight, nil
}

// SetTheme stores the user's theme
func (s *InMemoryPreferenceStore) SetTheme(ctx context.Context, userID uuid.UUID, theme identity.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.themes[userID] = theme
	return nil
}

// Ensure InMemoryPreferenceStore implements PreferenceStore
var _ identity.PreferenceStore = (*InMemoryPreferenceStore)(nil)
