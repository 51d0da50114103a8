package mapping

import (
	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/HPG21/czp-releases/internal/models"
)

// ToModelSettings converts domain Settings to a model UserSettings
func ToModelSettings(d domain.Settings) models.UserSettings {
	return models.UserSettings{
		UserID:                d.UserID,
		TaxRatePercent:        d.TaxRatePercent,
		BaseSalaryAmount:      d.BaseSalaryAmount,
		BaseSalaryEnabled:     d.BaseSalaryEnabled,
		ShowQuarters:          d.ShowQuarters,
		ThemeMode:             string(d.ThemeMode),
		CardKeyMetrics:        d.Cards.KeyMetrics,
		CardSalaryTrend:       d.Cards.SalaryTrend,
		CardHoursDistribution: d.Cards.HoursDistribution,
		CardTopMonths:         d.Cards.TopMonths,
		CardHourlyEfficiency:  d.Cards.HourlyEfficiency,
		CardYearComparison:    d.Cards.YearComparison,
		CardSalaryGrowth:      d.Cards.SalaryGrowth,
		CardSalaryRaise:       d.Cards.SalaryRaise,
		LastUpdatedAt:         d.LastUpdatedAt.UTC(),
	}
}

// ToDomainSettings converts a model UserSettings to domain Settings
func ToDomainSettings(m models.UserSettings) domain.Settings {
	return domain.Settings{
		UserID:            m.UserID,
		TaxRatePercent:    m.TaxRatePercent,
		BaseSalaryAmount:  m.BaseSalaryAmount,
		BaseSalaryEnabled: m.BaseSalaryEnabled,
		ShowQuarters:      m.ShowQuarters,
		ThemeMode:         domain.ThemeMode(m.ThemeMode),
		Cards: domain.AnalyticsCards{
			KeyMetrics:        m.CardKeyMetrics,
			SalaryTrend:       m.CardSalaryTrend,
			HoursDistribution: m.CardHoursDistribution,
			TopMonths:         m.CardTopMonths,
			HourlyEfficiency:  m.CardHourlyEfficiency,
			YearComparison:    m.CardYearComparison,
			SalaryGrowth:      m.CardSalaryGrowth,
			SalaryRaise:       m.CardSalaryRaise,
		},
		LastUpdatedAt: m.LastUpdatedAt.UTC(),
	}
}
