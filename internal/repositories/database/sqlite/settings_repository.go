package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	"github.com/HPG21/czp-releases/internal/models"
	"github.com/HPG21/czp-releases/internal/utils/mapping"
)

type SQLiteSettingsRepository struct {
	BaseRepository
}

// newSQLiteSettingsRepository creates a new repository for user settings.
func newSQLiteSettingsRepository(db *sql.DB) portsrepo.SettingsRepositoryFacade {
	return &SQLiteSettingsRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SettingsRepositoryFacade = (*SQLiteSettingsRepository)(nil)

// FindSettings retrieves the settings of a user.
func (r *SQLiteSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	query := `
		SELECT user_id, tax_rate_percent, base_salary_amount, base_salary_enabled, show_quarters, theme_mode,
			card_key_metrics, card_salary_trend, card_hours_distribution, card_top_months,
			card_hourly_efficiency, card_year_comparison, card_salary_growth, card_salary_raise, last_updated_at
		FROM user_settings
		WHERE user_id = ?;
	`
	var (
		m          models.UserSettings
		baseSalary sql.NullFloat64
		updated    string
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&m.UserID,
		&m.TaxRatePercent,
		&baseSalary,
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
		&updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for user %s: %w", userID, err)
	}
	if baseSalary.Valid {
		m.BaseSalaryAmount = &baseSalary.Float64
	}
	if m.LastUpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, err
	}

	settings := mapping.ToDomainSettings(m)
	return &settings, nil
}

// SaveSettings inserts or replaces the settings of a user.
func (r *SQLiteSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	m := mapping.ToModelSettings(settings)
	query := `
		INSERT INTO user_settings (user_id, tax_rate_percent, base_salary_amount, base_salary_enabled, show_quarters,
			theme_mode, card_key_metrics, card_salary_trend, card_hours_distribution, card_top_months,
			card_hourly_efficiency, card_year_comparison, card_salary_growth, card_salary_raise, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			tax_rate_percent = excluded.tax_rate_percent,
			base_salary_amount = excluded.base_salary_amount,
			base_salary_enabled = excluded.base_salary_enabled,
			show_quarters = excluded.show_quarters,
			theme_mode = excluded.theme_mode,
			card_key_metrics = excluded.card_key_metrics,
			card_salary_trend = excluded.card_salary_trend,
			card_hours_distribution = excluded.card_hours_distribution,
			card_top_months = excluded.card_top_months,
			card_hourly_efficiency = excluded.card_hourly_efficiency,
			card_year_comparison = excluded.card_year_comparison,
			card_salary_growth = excluded.card_salary_growth,
			card_salary_raise = excluded.card_salary_raise,
			last_updated_at = excluded.last_updated_at;
	`
	_, err := r.DB.ExecContext(ctx, query,
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
		formatTimestamp(m.LastUpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings for user %s: %w", m.UserID, err)
	}
	return nil
}
