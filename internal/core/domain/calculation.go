package domain

import "time"

// Inputs are the raw figures a user enters into the calculator for one month.
type Inputs struct {
	QuarterlyNormHours float64 `json:"quarterlyNormHours"`
	BaseSalaryAmount   float64 `json:"baseSalaryAmount"`
	RegularHours       float64 `json:"regularHours"` // all worked hours, night and holiday included
	NightHours         float64 `json:"nightHours"`
	HolidayHours       float64 `json:"holidayHours"`
	TaxRatePercent     float64 `json:"taxRatePercent"`
}

// Breakdown is the full pay decomposition derived from Inputs.
type Breakdown struct {
	HourlyRate      float64 `json:"hourlyRate"`
	NetHourlyRate   float64 `json:"netHourlyRate"`
	RegularPayGross float64 `json:"regularPayGross"`
	NightPayGross   float64 `json:"nightPayGross"`
	HolidayPayGross float64 `json:"holidayPayGross"`
	RegularPayNet   float64 `json:"regularPayNet"`
	NightPayNet     float64 `json:"nightPayNet"`
	HolidayPayNet   float64 `json:"holidayPayNet"`
	TotalPayNet     float64 `json:"totalPayNet"`
	TotalPayGross   float64 `json:"totalPayGross"`
	TotalTaxesPaid  float64 `json:"totalTaxesPaid"`
}

// CalculationRecord is one saved monthly salary computation.
// Date always points at the first day of the month it applies to; a history holds
// at most one record per (year, month).
type CalculationRecord struct {
	ID     string    `json:"id"`     // Primary Key (UUID)
	UserID string    `json:"userID"` // Owner of the history
	Date   time.Time `json:"date"`

	QuarterlyNormHours float64 `json:"quarterlyNormHours"`
	BaseSalaryAmount   float64 `json:"baseSalaryAmount"`
	RegularHours       float64 `json:"regularHours"`
	NightHours         float64 `json:"nightHours"`
	HolidayHours       float64 `json:"holidayHours"`
	TaxRatePercent     float64 `json:"taxRatePercent"`

	// Derived fields, cached at creation/edit time.
	HourlyRate     float64 `json:"hourlyRate"`
	NetHourlyRate  float64 `json:"netHourlyRate"`
	RegularPayNet  float64 `json:"regularPayNet"`
	NightPayNet    float64 `json:"nightPayNet"`
	HolidayPayNet  float64 `json:"holidayPayNet"`
	TotalPayNet    float64 `json:"totalPayNet"`
	TotalPayGross  float64 `json:"totalPayGross"`
	TotalTaxesPaid float64 `json:"totalTaxesPaid"`

	AuditFields
}

// Inputs returns the raw inputs the record was computed from.
func (r CalculationRecord) Inputs() Inputs {
	return Inputs{
		QuarterlyNormHours: r.QuarterlyNormHours,
		BaseSalaryAmount:   r.BaseSalaryAmount,
		RegularHours:       r.RegularHours,
		NightHours:         r.NightHours,
		HolidayHours:       r.HolidayHours,
		TaxRatePercent:     r.TaxRatePercent,
	}
}

// ApplyInputs overwrites the raw inputs of the record.
func (r *CalculationRecord) ApplyInputs(in Inputs) {
	r.QuarterlyNormHours = in.QuarterlyNormHours
	r.BaseSalaryAmount = in.BaseSalaryAmount
	r.RegularHours = in.RegularHours
	r.NightHours = in.NightHours
	r.HolidayHours = in.HolidayHours
	r.TaxRatePercent = in.TaxRatePercent
}

// ApplyBreakdown replaces every derived field of the record.
func (r *CalculationRecord) ApplyBreakdown(b Breakdown) {
	r.HourlyRate = b.HourlyRate
	r.NetHourlyRate = b.NetHourlyRate
	r.RegularPayNet = b.RegularPayNet
	r.NightPayNet = b.NightPayNet
	r.HolidayPayNet = b.HolidayPayNet
	r.TotalPayNet = b.TotalPayNet
	r.TotalPayGross = b.TotalPayGross
	r.TotalTaxesPaid = b.TotalTaxesPaid
}

// SameMonth reports whether the record applies to the given year and month.
func (r CalculationRecord) SameMonth(year int, month time.Month) bool {
	return r.Date.Year() == year && r.Date.Month() == month
}

// Quarter returns the calendar quarter (1-4) of the record's month.
func (r CalculationRecord) Quarter() int {
	return (int(r.Date.Month())-1)/3 + 1
}

// MonthStart normalizes t to midnight UTC on the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
