package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	"github.com/HPG21/czp-releases/internal/models"
	"github.com/HPG21/czp-releases/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for user settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// FindSettings retrieves the settings of a user.
func (r *PgxSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	query := `
		SELECT user_id, tax_rate_percent, base_salary_amount, base_salary_enabled, show_quarters, theme_mode,
			card_key_metrics, card_salary_trend, card_hours_distribution, card_top_months,
			card_hourly_efficiency, card_year_comparison, card_salary_growth, card_salary_raise, last_updated_at
		FROM user_settings
		WHERE user_id = $1;
	`
	var m models.UserSettings
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.TaxRatePercent,
		&m.BaseSalaryAmount,
		&m.BaseSalaryEnabled,
		&m.ShowQuarters,
		&m.ThemeMode,
		&m.CardKeyMetrics,
		&m.CardSalaryTrend,
		&m.CardHoursDistribution,
		&m.CardTopMonths,
		&m.CardHourlyEfficiency,
		&m.CardYearComparison,
		&m.CardSalaryGrowth,
		&m.CardSalaryRaise,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for user %s: %w", userID, err)
	}

	settings := mapping.ToDomainSettings(m)
	return &settings, nil
}

// SaveSettings inserts or replaces the settings of a user.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	m := mapping.ToModelSettings(settings)
	query := `
		INSERT INTO user_settings (user_id, tax_rate_percent, base_salary_amount, base_salary_enabled, show_quarters,
			theme_mode, card_key_metrics, card_salary_trend, card_hours_distribution, card_top_months,
			card_hourly_efficiency, card_year_comparison, card_salary_growth, card_salary_raise, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			tax_rate_percent = EXCLUDED.tax_rate_percent,
			base_salary_amount = EXCLUDED.base_salary_amount,
			base_salary_enabled = EXCLUDED.base_salary_enabled,
			show_quarters = EXCLUDED.show_quarters,
			theme_mode = EXCLUDED.theme_mode,
			card_key_metrics = EXCLUDED.card_key_metrics,
			card_salary_trend = EXCLUDED.card_salary_trend,
			card_hours_distribution = EXCLUDED.card_hours_distribution,
			card_top_months = EXCLUDED.card_top_months,
			card_hourly_efficiency = EXCLUDED.card_hourly_efficiency,
			card_year_comparison = EXCLUDED.card_year_comparison,
			card_salary_growth = EXCLUDED.card_salary_growth,
			card_salary_raise = EXCLUDED.card_salary_raise,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.TaxRatePercent,
		m.BaseSalaryAmount,
		m.BaseSalaryEnabled,
		m.ShowQuarters,
		m.ThemeMode,
		m.CardKeyMetrics,
		m.CardSalaryTrend,
		m.CardHoursDistribution,
		m.CardTopMonths,
		m.CardHourlyEfficiency,
		m.CardYearComparison,
		m.CardSalaryGrowth,
		m.CardSalaryRaise,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings for user %s: %w", m.UserID, err)
	}
	return nil
}
