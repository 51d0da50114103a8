package domain

import "time"

// DefaultTaxRatePercent is used until the user picks another rate.
const DefaultTaxRatePercent = 13.0

// AllowedTaxRates lists the flat income-tax rates the calculator accepts.
var AllowedTaxRates = []float64{13, 15}

// IsAllowedTaxRate reports whether rate is one of AllowedTaxRates.
func IsAllowedTaxRate(rate float64) bool {
	for _, allowed := range AllowedTaxRates {
		if rate == allowed {
			return true
		}
	}
	return false
}

// ThemeMode is the client colour scheme preference. Stored, never interpreted here.
type ThemeMode string

const (
	ThemeAuto  ThemeMode = "AUTO"
	ThemeLight ThemeMode = "LIGHT"
	ThemeDark  ThemeMode = "DARK"
)

// IsValid reports whether m is a known theme mode.
func (m ThemeMode) IsValid() bool {
	switch m {
	case ThemeAuto, ThemeLight, ThemeDark:
		return true
	}
	return false
}

// AnalyticsCards toggles each analytics metric bundle on or off.
type AnalyticsCards struct {
	KeyMetrics        bool `json:"keyMetrics"`
	SalaryTrend       bool `json:"salaryTrend"`
	HoursDistribution bool `json:"hoursDistribution"`
	TopMonths         bool `json:"topMonths"`
	HourlyEfficiency  bool `json:"hourlyEfficiency"`
	YearComparison    bool `json:"yearComparison"`
	SalaryGrowth      bool `json:"salaryGrowth"` // taxes summary
	SalaryRaise       bool `json:"salaryRaise"`
}

// AllCards returns a toggle set with every card enabled.
func AllCards() AnalyticsCards {
	return AnalyticsCards{
		KeyMetrics:        true,
		SalaryTrend:       true,
		HoursDistribution: true,
		TopMonths:         true,
		HourlyEfficiency:  true,
		YearComparison:    true,
		SalaryGrowth:      true,
		SalaryRaise:       true,
	}
}

// Settings are the per-user preferences consumed by the calculator and analytics.
type Settings struct {
	UserID            string         `json:"userID"`
	TaxRatePercent    float64        `json:"taxRatePercent"`
	BaseSalaryAmount  *float64       `json:"baseSalaryAmount"`
	BaseSalaryEnabled bool           `json:"baseSalaryEnabled"`
	ShowQuarters      bool           `json:"showQuarters"`
	ThemeMode         ThemeMode      `json:"themeMode"`
	Cards             AnalyticsCards `json:"cards"`
	LastUpdatedAt     time.Time      `json:"lastUpdatedAt"`
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:         userID,
		TaxRatePercent: DefaultTaxRatePercent,
		ShowQuarters:   true,
		ThemeMode:      ThemeAuto,
		Cards:          AllCards(),
	}
}

// DefaultBaseSalary returns the stored base salary when the user enabled it.
func (s Settings) DefaultBaseSalary() (float64, bool) {
	if !s.BaseSalaryEnabled || s.BaseSalaryAmount == nil {
		return 0, false
	}
	return *s.BaseSalaryAmount, true
}
