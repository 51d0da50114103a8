package models

import "time"

// Calculation is a row of the calculations table.
type Calculation struct {
	CalculationID      string    `db:"calculation_id"` // Primary Key (UUID)
	UserID             string    `db:"user_id"`
	CalcMonth          time.Time `db:"calc_month"` // first day of the month, unique per user
	QuarterlyNormHours float64   `db:"quarterly_norm_hours"`
	BaseSalaryAmount   float64   `db:"base_salary_amount"`
	RegularHours       float64   `db:"regular_hours"`
	NightHours         float64   `db:"night_hours"`
	HolidayHours       float64   `db:"holiday_hours"`
	TaxRatePercent     float64   `db:"tax_rate_percent"`
	HourlyRate         float64   `db:"hourly_rate"`
	NetHourlyRate      float64   `db:"net_hourly_rate"`
	RegularPayNet      float64   `db:"regular_pay_net"`
	NightPayNet        float64   `db:"night_pay_net"`
	HolidayPayNet      float64   `db:"holiday_pay_net"`
	TotalPayNet        float64   `db:"total_pay_net"`
	TotalPayGross      float64   `db:"total_pay_gross"`
	TotalTaxesPaid     float64   `db:"total_taxes_paid"`
	AuditFields
}
