package services

import (
	"context"

	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/HPG21/czp-releases/internal/dto"
)

// SettingsReaderSvc defines read operations for user settings
type SettingsReaderSvc interface {
	// GetSettings returns the stored settings, or the defaults when nothing was saved yet.
	GetSettings(ctx context.Context, userID string) (*domain.Settings, error)
}

// SettingsWriterSvc defines write operations for user settings
type SettingsWriterSvc interface {
	UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.Settings, error)
}

// SettingsSvcFacade combines all settings-related service interfaces
type SettingsSvcFacade interface {
	SettingsReaderSvc
	SettingsWriterSvc
}
