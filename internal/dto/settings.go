package dto

import (
	"time"

	"github.com/HPG21/czp-releases/internal/core/domain"
)

// AnalyticsCardsRequest toggles individual analytics cards. Nil fields are left unchanged.
type AnalyticsCardsRequest struct {
	KeyMetrics        *bool `json:"keyMetrics"`
	SalaryTrend       *bool `json:"salaryTrend"`
	HoursDistribution *bool `json:"hoursDistribution"`
	TopMonths         *bool `json:"topMonths"`
	HourlyEfficiency  *bool `json:"hourlyEfficiency"`
	YearComparison    *bool `json:"yearComparison"`
	SalaryGrowth      *bool `json:"salaryGrowth"`
	SalaryRaise       *bool `json:"salaryRaise"`
}

// UpdateSettingsRequest is a partial settings update.
type UpdateSettingsRequest struct {
	TaxRatePercent    *float64               `json:"taxRatePercent" binding:"omitempty,taxrate"`
	BaseSalaryAmount  *float64               `json:"baseSalaryAmount" binding:"omitempty,gte=0"`
	ClearBaseSalary   bool                   `json:"clearBaseSalary"`
	BaseSalaryEnabled *bool                  `json:"baseSalaryEnabled"`
	ShowQuarters      *bool                  `json:"showQuarters"`
	ThemeMode         *string                `json:"themeMode" binding:"omitempty,oneof=AUTO LIGHT DARK"`
	Cards             *AnalyticsCardsRequest `json:"cards"`
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Apply overlays the set fields of the request on top of current.
func (r UpdateSettingsRequest) Apply(current domain.Settings) domain.Settings {
	s := current
	if r.TaxRatePercent != nil {
		s.TaxRatePercent = *r.TaxRatePercent
	}
	if r.ClearBaseSalary {
		s.BaseSalaryAmount = nil
	}
	if r.BaseSalaryAmount != nil {
		amount := *r.BaseSalaryAmount
		s.BaseSalaryAmount = &amount
	}
	setBool(&s.BaseSalaryEnabled, r.BaseSalaryEnabled)
	setBool(&s.ShowQuarters, r.ShowQuarters)
	if r.ThemeMode != nil {
		s.ThemeMode = domain.ThemeMode(*r.ThemeMode)
	}
	if c := r.Cards; c != nil {
		setBool(&s.Cards.KeyMetrics, c.KeyMetrics)
		setBool(&s.Cards.SalaryTrend, c.SalaryTrend)
		setBool(&s.Cards.HoursDistribution, c.HoursDistribution)
		setBool(&s.Cards.TopMonths, c.TopMonths)
		setBool(&s.Cards.HourlyEfficiency, c.HourlyEfficiency)
		setBool(&s.Cards.YearComparison, c.YearComparison)
		setBool(&s.Cards.SalaryGrowth, c.SalaryGrowth)
		setBool(&s.Cards.SalaryRaise, c.SalaryRaise)
	}
	return s
}

// SettingsResponse defines the data returned for user settings.
type SettingsResponse struct {
	TaxRatePercent    float64               `json:"taxRatePercent"`
	AllowedTaxRates   []float64             `json:"allowedTaxRates"`
	BaseSalaryAmount  *float64              `json:"baseSalaryAmount"`
	BaseSalaryEnabled bool                  `json:"baseSalaryEnabled"`
	ShowQuarters      bool                  `json:"showQuarters"`
	ThemeMode         string                `json:"themeMode"`
	Cards             domain.AnalyticsCards `json:"cards"`
	LastUpdatedAt     *time.Time            `json:"lastUpdatedAt,omitempty"`
}

// ToSettingsResponse converts domain.Settings to SettingsResponse DTO.
func ToSettingsResponse(s domain.Settings) SettingsResponse {
	resp := SettingsResponse{
		TaxRatePercent:    s.TaxRatePercent,
		AllowedTaxRates:   domain.AllowedTaxRates,
		BaseSalaryAmount:  s.BaseSalaryAmount,
		BaseSalaryEnabled: s.BaseSalaryEnabled,
		ShowQuarters:      s.ShowQuarters,
		ThemeMode:         string(s.ThemeMode),
		Cards:             s.Cards,
	}
	if !s.LastUpdatedAt.IsZero() {
		updated := s.LastUpdatedAt
		resp.LastUpdatedAt = &updated
	}
	return resp
}
