// Package payroll turns shift-hour inputs into a monthly pay breakdown.
//
// Calculate is the raw formula and never fails. Compute is the public entry point used
// by the services: it validates the inputs first and only then runs Calculate.
package payroll

import (
	"math"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
)

const (
	// MonthsPerQuarter converts a quarterly hours norm into a monthly hourly rate.
	MonthsPerQuarter = 3.0
	// NightSurchargeFactor is paid on top of the base rate for every night hour.
	NightSurchargeFactor = 0.4
)

// Calculate derives the full pay breakdown from in.
//
// The float64 conversions around products stop the compiler from fusing them into
// multiply-add instructions, so the result is bit-identical on every platform.
// A non-positive quarterly norm yields a zero hourly rate.
func Calculate(in domain.Inputs) domain.Breakdown {
	hourlyRate := 0.0
	if in.QuarterlyNormHours > 0 {
		hourlyRate = float64(in.BaseSalaryAmount*MonthsPerQuarter) / in.QuarterlyNormHours
	}
	taxAmountPerHour := float64(float64(hourlyRate*in.TaxRatePercent) / 100)
	netHourlyRate := hourlyRate - taxAmountPerHour

	regularPayGross := float64(in.RegularHours * hourlyRate)
	nightPayGross := float64(float64(in.NightHours*hourlyRate) * NightSurchargeFactor)
	holidayPayGross := float64(in.HolidayHours * hourlyRate)
	totalPayGross := regularPayGross + nightPayGross + holidayPayGross

	regularPayNet := float64(in.RegularHours * netHourlyRate)
	nightPayNet := float64(float64(in.NightHours*netHourlyRate) * NightSurchargeFactor)
	holidayPayNet := float64(in.HolidayHours * netHourlyRate)
	totalPayNet := regularPayNet + nightPayNet + holidayPayNet

	return domain.Breakdown{
		HourlyRate:      hourlyRate,
		NetHourlyRate:   netHourlyRate,
		RegularPayGross: regularPayGross,
		NightPayGross:   nightPayGross,
		HolidayPayGross: holidayPayGross,
		RegularPayNet:   regularPayNet,
		NightPayNet:     nightPayNet,
		HolidayPayNet:   holidayPayNet,
		TotalPayNet:     totalPayNet,
		TotalPayGross:   totalPayGross,
		TotalTaxesPaid:  totalPayGross - totalPayNet,
	}
}

// ValidateInputs checks everything Calculate silently tolerates.
// Errors wrap apperrors.ErrValidation.
func ValidateInputs(in domain.Inputs) error {
	if !isFinite(in.QuarterlyNormHours) || in.QuarterlyNormHours <= 0 {
		return apperrors.Validationf("quarterly norm hours must be positive, got %v", in.QuarterlyNormHours)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"base salary amount", in.BaseSalaryAmount},
		{"regular hours", in.RegularHours},
		{"night hours", in.NightHours},
		{"holiday hours", in.HolidayHours},
	}
	for _, f := range fields {
		if !isFinite(f.value) || f.value < 0 {
			return apperrors.Validationf("%s must be a non-negative number, got %v", f.name, f.value)
		}
	}
	if in.NightHours+in.HolidayHours > in.RegularHours {
		return apperrors.Validationf("night hours (%v) plus holiday hours (%v) exceed regular hours (%v)",
			in.NightHours, in.HolidayHours, in.RegularHours)
	}
	if !domain.IsAllowedTaxRate(in.TaxRatePercent) {
		return apperrors.Validationf("tax rate %v%% is not one of %v", in.TaxRatePercent, domain.AllowedTaxRates)
	}
	return nil
}

// Compute validates in and returns its breakdown.
func Compute(in domain.Inputs) (domain.Breakdown, error) {
	if err := ValidateInputs(in); err != nil {
		return domain.Breakdown{}, err
	}
	return Calculate(in), nil
}

// NewRecord builds a record for the month containing date.
func NewRecord(id, userID string, date time.Time, in domain.Inputs, createdAt time.Time) (domain.CalculationRecord, error) {
	breakdown, err := Compute(in)
	if err != nil {
		return domain.CalculationRecord{}, err
	}
	rec := domain.CalculationRecord{
		ID:     id,
		UserID: userID,
		Date:   domain.MonthStart(date),
		AuditFields: domain.AuditFields{
			CreatedAt:     createdAt,
			LastUpdatedAt: createdAt,
		},
	}
	rec.ApplyInputs(in)
	rec.ApplyBreakdown(breakdown)
	return rec, nil
}

// Recompute replaces the inputs and every derived field of rec, keeping its identity,
// month and creation time. rec itself is not modified.
func Recompute(rec domain.CalculationRecord, in domain.Inputs, updatedAt time.Time) (domain.CalculationRecord, error) {
	breakdown, err := Compute(in)
	if err != nil {
		return domain.CalculationRecord{}, err
	}
	updated := rec
	updated.ApplyInputs(in)
	updated.ApplyBreakdown(breakdown)
	updated.LastUpdatedAt = updatedAt
	return updated, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
