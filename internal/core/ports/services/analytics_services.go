package services

import (
	"context"

	"github.com/HPG21/czp-releases/internal/core/domain"
)

// AnalyticsSvc defines operations for generating salary analytics
type AnalyticsSvc interface {
	// GetReport filters the user's history and aggregates the cards enabled in their settings.
	GetReport(ctx context.Context, userID string, opts domain.FilterOptions) (*domain.AnalyticsReport, error)
}
