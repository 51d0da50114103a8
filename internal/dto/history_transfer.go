package dto

import (
	"time"

	"github.com/HPG21/czp-releases/internal/core/domain"
)

// HistoryExportVersion is bumped whenever the export layout changes.
const HistoryExportVersion = 1

// CalculationTransfer is the lossless export form of a calculation. Derived fields are
// not carried: they are recomputed on import.
type CalculationTransfer struct {
	CalculationID      string    `json:"calculationID,omitempty"`
	Date               string    `json:"date" binding:"required,datetime=2006-01-02"`
	QuarterlyNormHours float64   `json:"quarterlyNormHours" binding:"required,gt=0"`
	BaseSalaryAmount   float64   `json:"baseSalaryAmount" binding:"gte=0"`
	RegularHours       float64   `json:"regularHours" binding:"gte=0"`
	NightHours         float64   `json:"nightHours" binding:"gte=0"`
	HolidayHours       float64   `json:"holidayHours" binding:"gte=0"`
	TaxRatePercent     float64   `json:"taxRatePercent" binding:"taxrate"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Inputs returns the calculator inputs of the transfer row.
func (t CalculationTransfer) Inputs() domain.Inputs {
	return domain.Inputs{
		QuarterlyNormHours: t.QuarterlyNormHours,
		BaseSalaryAmount:   t.BaseSalaryAmount,
		RegularHours:       t.RegularHours,
		NightHours:         t.NightHours,
		HolidayHours:       t.HolidayHours,
		TaxRatePercent:     t.TaxRatePercent,
	}
}

// HistoryExport is the payload returned by the export endpoint and accepted back by import.
type HistoryExport struct {
	Version      int                   `json:"version"`
	ExportedAt   time.Time             `json:"exportedAt"`
	Calculations []CalculationTransfer `json:"calculations"`
}

// ImportHistoryRequest carries previously exported calculations.
type ImportHistoryRequest struct {
	Calculations []CalculationTransfer `json:"calculations" binding:"required,dive"`
}

// ImportHistoryResponse reports the outcome of an import.
type ImportHistoryResponse struct {
	Imported      int      `json:"imported"`
	Skipped       int      `json:"skipped"`
	SkippedMonths []string `json:"skippedMonths"`
}

// ToCalculationTransfer converts a domain.CalculationRecord to its export form.
func ToCalculationTransfer(r *domain.CalculationRecord) CalculationTransfer {
	return CalculationTransfer{
		CalculationID:      r.ID,
		Date:               r.Date.Format(DateLayout),
		QuarterlyNormHours: r.QuarterlyNormHours,
		BaseSalaryAmount:   r.BaseSalaryAmount,
		RegularHours:       r.RegularHours,
		NightHours:         r.NightHours,
		HolidayHours:       r.HolidayHours,
		TaxRatePercent:     r.TaxRatePercent,
		CreatedAt:          r.CreatedAt,
	}
}
