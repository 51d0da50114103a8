package repositories

import (
	"context"

	"github.com/HPG21/czp-releases/internal/core/domain"
)

// SettingsReader defines read operations for user settings
type SettingsReader interface {
	// FindSettings returns apperrors.ErrNotFound when the user never saved settings.
	FindSettings(ctx context.Context, userID string) (*domain.Settings, error)
}

// SettingsWriter defines write operations for user settings
type SettingsWriter interface {
	// SaveSettings inserts or replaces the user's settings.
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// SettingsRepositoryFacade combines all settings-related repository interfaces
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
