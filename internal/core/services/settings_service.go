package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	portssvc "github.com/HPG21/czp-releases/internal/core/ports/services"
	"github.com/HPG21/czp-releases/internal/dto"
)

// settingsService implements the SettingsSvcFacade interface
type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// SettingsServiceOption is a functional option for configuring the settings service
type SettingsServiceOption func(*settingsService)

// WithSettingsClock overrides the clock used to stamp updates.
func WithSettingsClock(clock func() time.Time) SettingsServiceOption {
	return func(s *settingsService) {
		s.Clock = clock
	}
}

// NewSettingsService creates a new settings service with the provided options
func NewSettingsService(repo portsrepo.SettingsRepositoryFacade, options ...SettingsServiceOption) portssvc.SettingsSvcFacade {
	svc := &settingsService{settingsRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure settingsService implements the SettingsSvcFacade interface
var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSettings returns the stored settings or the defaults for a new user.
func (s *settingsService) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No stored settings, using defaults", slog.String("user_id", userID))
			defaults := domain.DefaultSettings(userID)
			return &defaults, nil
		}
		s.LogError(ctx, err, "Failed to retrieve settings", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to retrieve settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a partial update and persists the result.
func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := req.Apply(*current)
	updated.UserID = userID
	if err := validateSettings(updated); err != nil {
		s.LogWarn(ctx, "Rejected settings update", slog.String("user_id", userID), slog.String("reason", err.Error()))
		return nil, err
	}
	updated.LastUpdatedAt = s.Now()

	if err := s.settingsRepo.SaveSettings(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to save settings", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.LogInfo(ctx, "Settings updated",
		slog.String("user_id", userID),
		slog.Float64("tax_rate_percent", updated.TaxRatePercent),
		slog.Bool("base_salary_enabled", updated.BaseSalaryEnabled))
	return &updated, nil
}

func validateSettings(s domain.Settings) error {
	if !domain.IsAllowedTaxRate(s.TaxRatePercent) {
		return apperrors.Validationf("tax rate %v is not allowed", s.TaxRatePercent)
	}
	if !s.ThemeMode.IsValid() {
		return apperrors.Validationf("unknown theme mode %q", s.ThemeMode)
	}
	if s.BaseSalaryAmount != nil && *s.BaseSalaryAmount < 0 {
		return apperrors.Validationf("base salary must not be negative")
	}
	if s.BaseSalaryEnabled && s.BaseSalaryAmount == nil {
		return apperrors.Validationf("base salary amount is required when the default base salary is enabled")
	}
	return nil
}
