package models

import "time"

// UserSettings is a row of the user_settings table.
type UserSettings struct {
	UserID                string    `db:"user_id"` // Primary Key
	TaxRatePercent        float64   `db:"tax_rate_percent"`
	BaseSalaryAmount      *float64  `db:"base_salary_amount"` // NULL when never entered
	BaseSalaryEnabled     bool      `db:"base_salary_enabled"`
	ShowQuarters          bool      `db:"show_quarters"`
	ThemeMode             string    `db:"theme_mode"`
	CardKeyMetrics        bool      `db:"card_key_metrics"`
	CardSalaryTrend       bool      `db:"card_salary_trend"`
	CardHoursDistribution bool      `db:"card_hours_distribution"`
	CardTopMonths         bool      `db:"card_top_months"`
	CardHourlyEfficiency  bool      `db:"card_hourly_efficiency"`
	CardYearComparison    bool      `db:"card_year_comparison"`
	CardSalaryGrowth      bool      `db:"card_salary_growth"`
	CardSalaryRaise       bool      `db:"card_salary_raise"`
	LastUpdatedAt         time.Time `db:"last_updated_at"`
}
