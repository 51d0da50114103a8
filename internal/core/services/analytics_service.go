package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/analytics"
	"github.com/HPG21/czp-releases/internal/core/domain"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	portssvc "github.com/HPG21/czp-releases/internal/core/ports/services"
)

// analyticsService implements the AnalyticsSvc interface
type analyticsService struct {
	BaseService
	calcRepo    portsrepo.CalculationReader
	settingsSvc portssvc.SettingsReaderSvc
}

// AnalyticsServiceOption is a functional option for configuring the analytics service
type AnalyticsServiceOption func(*analyticsService)

// WithAnalyticsSettings sets where the card toggles come from. Without it every card is built.
func WithAnalyticsSettings(settingsSvc portssvc.SettingsReaderSvc) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.settingsSvc = settingsSvc
	}
}

// WithAnalyticsClock overrides the clock that anchors relative periods.
func WithAnalyticsClock(clock func() time.Time) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.Clock = clock
	}
}

// NewAnalyticsService creates a new analytics service with the provided options
func NewAnalyticsService(repo portsrepo.CalculationReader, options ...AnalyticsServiceOption) portssvc.AnalyticsSvc {
	svc := &analyticsService{calcRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure analyticsService implements the AnalyticsSvc interface
var _ portssvc.AnalyticsSvc = (*analyticsService)(nil)

// GetReport filters the history and aggregates the enabled cards.
func (s *analyticsService) GetReport(ctx context.Context, userID string, opts domain.FilterOptions) (*domain.AnalyticsReport, error) {
	if opts.Period == "" {
		opts.Period = domain.PeriodAllTime
	}
	if !opts.Period.IsValid() {
		return nil, apperrors.Validationf("unknown period %q", opts.Period)
	}

	cards := domain.AllCards()
	if s.settingsSvc != nil {
		settings, err := s.settingsSvc.GetSettings(ctx, userID)
		if err != nil {
			return nil, err
		}
		cards = settings.Cards
	}

	history, err := s.calcRepo.ListCalculations(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load history for analytics", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	report := analytics.Report(history, opts, cards, s.Now())

	s.LogInfo(ctx, "Analytics report generated",
		slog.String("user_id", userID),
		slog.String("period", string(opts.Period)),
		slog.Int("filtered_count", report.FilteredCount),
		slog.Int("total_count", report.TotalCount))
	return &report, nil
}
