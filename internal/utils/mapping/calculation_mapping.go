package mapping

import (
	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/HPG21/czp-releases/internal/models"
)

// ToModelCalculation converts a domain CalculationRecord to a model Calculation
func ToModelCalculation(d domain.CalculationRecord) models.Calculation {
	return models.Calculation{
		CalculationID:      d.ID,
		UserID:             d.UserID,
		CalcMonth:          domain.MonthStart(d.Date),
		QuarterlyNormHours: d.QuarterlyNormHours,
		BaseSalaryAmount:   d.BaseSalaryAmount,
		RegularHours:       d.RegularHours,
		NightHours:         d.NightHours,
		HolidayHours:       d.HolidayHours,
		TaxRatePercent:     d.TaxRatePercent,
		HourlyRate:         d.HourlyRate,
		NetHourlyRate:      d.NetHourlyRate,
		RegularPayNet:      d.RegularPayNet,
		NightPayNet:        d.NightPayNet,
		HolidayPayNet:      d.HolidayPayNet,
		TotalPayNet:        d.TotalPayNet,
		TotalPayGross:      d.TotalPayGross,
		TotalTaxesPaid:     d.TotalTaxesPaid,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCalculation converts a model Calculation to a domain CalculationRecord
func ToDomainCalculation(m models.Calculation) domain.CalculationRecord {
	return domain.CalculationRecord{
		ID:                 m.CalculationID,
		UserID:             m.UserID,
		Date:               domain.MonthStart(m.CalcMonth),
		QuarterlyNormHours: m.QuarterlyNormHours,
		BaseSalaryAmount:   m.BaseSalaryAmount,
		RegularHours:       m.RegularHours,
		NightHours:         m.NightHours,
		HolidayHours:       m.HolidayHours,
		TaxRatePercent:     m.TaxRatePercent,
		HourlyRate:         m.HourlyRate,
		NetHourlyRate:      m.NetHourlyRate,
		RegularPayNet:      m.RegularPayNet,
		NightPayNet:        m.NightPayNet,
		HolidayPayNet:      m.HolidayPayNet,
		TotalPayNet:        m.TotalPayNet,
		TotalPayGross:      m.TotalPayGross,
		TotalTaxesPaid:     m.TotalTaxesPaid,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCalculationSlice converts a slice of model Calculations to a slice of domain records
func ToDomainCalculationSlice(ms []models.Calculation) []domain.CalculationRecord {
	ds := make([]domain.CalculationRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCalculation(m)
	}
	return ds
}
