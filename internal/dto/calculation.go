package dto

import (
	"time"

	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/HPG21/czp-releases/internal/utils"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates in requests and exports.
const DateLayout = "2006-01-02"

// CalculationInputsRequest carries the raw calculator inputs.
// BaseSalaryAmount and TaxRatePercent fall back to the user's settings when omitted.
type CalculationInputsRequest struct {
	QuarterlyNormHours float64  `json:"quarterlyNormHours" binding:"required,gt=0"`
	BaseSalaryAmount   *float64 `json:"baseSalaryAmount" binding:"omitempty,gte=0"`
	RegularHours       float64  `json:"regularHours" binding:"gte=0"`
	NightHours         float64  `json:"nightHours" binding:"gte=0"`
	HolidayHours       float64  `json:"holidayHours" binding:"gte=0"`
	TaxRatePercent     *float64 `json:"taxRatePercent" binding:"omitempty,taxrate"`
}

// CreateCalculationRequest saves a calculation for the given month.
type CreateCalculationRequest struct {
	Year  int `json:"year" binding:"required,min=1900,max=2100"`
	Month int `json:"month" binding:"required,min=1,max=12"`
	CalculationInputsRequest
}

// PreviewCalculationRequest runs the calculator without saving anything.
type PreviewCalculationRequest struct {
	CalculationInputsRequest
}

// UpdateCalculationRequest edits the inputs of a saved calculation. Nil fields keep their current value.
type UpdateCalculationRequest struct {
	QuarterlyNormHours *float64 `json:"quarterlyNormHours" binding:"omitempty,gt=0"`
	BaseSalaryAmount   *float64 `json:"baseSalaryAmount" binding:"omitempty,gte=0"`
	RegularHours       *float64 `json:"regularHours" binding:"omitempty,gte=0"`
	NightHours         *float64 `json:"nightHours" binding:"omitempty,gte=0"`
	HolidayHours       *float64 `json:"holidayHours" binding:"omitempty,gte=0"`
	TaxRatePercent     *float64 `json:"taxRatePercent" binding:"omitempty,taxrate"`
}

// Apply overlays the set fields of the request on top of current.
func (r UpdateCalculationRequest) Apply(current domain.Inputs) domain.Inputs {
	in := current
	if r.QuarterlyNormHours != nil {
		in.QuarterlyNormHours = *r.QuarterlyNormHours
	}
	if r.BaseSalaryAmount != nil {
		in.BaseSalaryAmount = *r.BaseSalaryAmount
	}
	if r.RegularHours != nil {
		in.RegularHours = *r.RegularHours
	}
	if r.NightHours != nil {
		in.NightHours = *r.NightHours
	}
	if r.HolidayHours != nil {
		in.HolidayHours = *r.HolidayHours
	}
	if r.TaxRatePercent != nil {
		in.TaxRatePercent = *r.TaxRatePercent
	}
	return in
}

// ListCalculationsParams holds query parameters for paging through the history.
type ListCalculationsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// GroupedHistoryParams narrows the grouped history to one year.
type GroupedHistoryParams struct {
	Year *int `form:"year" binding:"omitempty,min=1900,max=2100"`
}

// BreakdownResponse is the rounded pay decomposition.
type BreakdownResponse struct {
	HourlyRate      decimal.Decimal `json:"hourlyRate"`
	NetHourlyRate   decimal.Decimal `json:"netHourlyRate"`
	RegularPayGross decimal.Decimal `json:"regularPayGross"`
	NightPayGross   decimal.Decimal `json:"nightPayGross"`
	HolidayPayGross decimal.Decimal `json:"holidayPayGross"`
	RegularPayNet   decimal.Decimal `json:"regularPayNet"`
	NightPayNet     decimal.Decimal `json:"nightPayNet"`
	HolidayPayNet   decimal.Decimal `json:"holidayPayNet"`
	TotalPayNet     decimal.Decimal `json:"totalPayNet"`
	TotalPayGross   decimal.Decimal `json:"totalPayGross"`
	TotalTaxesPaid  decimal.Decimal `json:"totalTaxesPaid"`
}

// PreviewCalculationResponse echoes the resolved inputs with their breakdown.
type PreviewCalculationResponse struct {
	Inputs    domain.Inputs     `json:"inputs"`
	Breakdown BreakdownResponse `json:"breakdown"`
}

// CalculationResponse defines the data returned for a saved calculation.
type CalculationResponse struct {
	CalculationID      string          `json:"calculationID"`
	Date               time.Time       `json:"date"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	Quarter            int             `json:"quarter"`
	QuarterlyNormHours float64         `json:"quarterlyNormHours"`
	BaseSalaryAmount   decimal.Decimal `json:"baseSalaryAmount"`
	RegularHours       float64         `json:"regularHours"`
	NightHours         float64         `json:"nightHours"`
	HolidayHours       float64         `json:"holidayHours"`
	TaxRatePercent     float64         `json:"taxRatePercent"`
	HourlyRate         decimal.Decimal `json:"hourlyRate"`
	NetHourlyRate      decimal.Decimal `json:"netHourlyRate"`
	RegularPayNet      decimal.Decimal `json:"regularPayNet"`
	NightPayNet        decimal.Decimal `json:"nightPayNet"`
	HolidayPayNet      decimal.Decimal `json:"holidayPayNet"`
	TotalPayNet        decimal.Decimal `json:"totalPayNet"`
	TotalPayGross      decimal.Decimal `json:"totalPayGross"`
	TotalTaxesPaid     decimal.Decimal `json:"totalTaxesPaid"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ListCalculationsResponse is one page of the history, newest month first.
type ListCalculationsResponse struct {
	Calculations []CalculationResponse `json:"calculations"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ClearHistoryResponse reports how many calculations were removed.
type ClearHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}

// HistoryQuarterResponse is one quarter of the grouped history.
type HistoryQuarterResponse struct {
	Quarter      int                   `json:"quarter"`
	Total        decimal.Decimal       `json:"total"`
	Calculations []CalculationResponse `json:"calculations"`
}

// HistoryYearResponse is one year of the grouped history.
type HistoryYearResponse struct {
	Year     int                      `json:"year"`
	Total    decimal.Decimal          `json:"total"`
	Quarters []HistoryQuarterResponse `json:"quarters"`
}

// GroupedHistoryResponse is the year/quarter view of the history.
type GroupedHistoryResponse struct {
	Years []HistoryYearResponse `json:"years"`
}

// ToBreakdownResponse converts a domain.Breakdown to its rounded DTO.
func ToBreakdownResponse(b domain.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		HourlyRate:      utils.RoundRate(b.HourlyRate),
		NetHourlyRate:   utils.RoundRate(b.NetHourlyRate),
		RegularPayGross: utils.RoundMoney(b.RegularPayGross),
		NightPayGross:   utils.RoundMoney(b.NightPayGross),
		HolidayPayGross: utils.RoundMoney(b.HolidayPayGross),
		RegularPayNet:   utils.RoundMoney(b.RegularPayNet),
		NightPayNet:     utils.RoundMoney(b.NightPayNet),
		HolidayPayNet:   utils.RoundMoney(b.HolidayPayNet),
		TotalPayNet:     utils.RoundMoney(b.TotalPayNet),
		TotalPayGross:   utils.RoundMoney(b.TotalPayGross),
		TotalTaxesPaid:  utils.RoundMoney(b.TotalTaxesPaid),
	}
}

// ToCalculationResponse converts a domain.CalculationRecord to CalculationResponse DTO.
func ToCalculationResponse(r *domain.CalculationRecord) CalculationResponse {
	return CalculationResponse{
		CalculationID:      r.ID,
		Date:               r.Date,
		Year:               r.Date.Year(),
		Month:              int(r.Date.Month()),
		Quarter:            r.Quarter(),
		QuarterlyNormHours: r.QuarterlyNormHours,
		BaseSalaryAmount:   utils.RoundMoney(r.BaseSalaryAmount),
		RegularHours:       r.RegularHours,
		NightHours:         r.NightHours,
		HolidayHours:       r.HolidayHours,
		TaxRatePercent:     r.TaxRatePercent,
		HourlyRate:         utils.RoundRate(r.HourlyRate),
		NetHourlyRate:      utils.RoundRate(r.NetHourlyRate),
		RegularPayNet:      utils.RoundMoney(r.RegularPayNet),
		NightPayNet:        utils.RoundMoney(r.NightPayNet),
		HolidayPayNet:      utils.RoundMoney(r.HolidayPayNet),
		TotalPayNet:        utils.RoundMoney(r.TotalPayNet),
		TotalPayGross:      utils.RoundMoney(r.TotalPayGross),
		TotalTaxesPaid:     utils.RoundMoney(r.TotalTaxesPaid),
		CreatedAt:          r.CreatedAt,
		LastUpdatedAt:      r.LastUpdatedAt,
	}
}

// ToCalculationResponses converts a slice of domain.CalculationRecord to []CalculationResponse.
func ToCalculationResponses(recs []domain.CalculationRecord) []CalculationResponse {
	responses := make([]CalculationResponse, len(recs))
	for i := range recs {
		responses[i] = ToCalculationResponse(&recs[i])
	}
	return responses
}

// ToGroupedHistoryResponse converts the year/quarter grouping to its DTO.
func ToGroupedHistoryResponse(years []domain.HistoryYear) GroupedHistoryResponse {
	resp := GroupedHistoryResponse{Years: make([]HistoryYearResponse, len(years))}
	for i, y := range years {
		quarters := make([]HistoryQuarterResponse, len(y.Quarters))
		for j, q := range y.Quarters {
			quarters[j] = HistoryQuarterResponse{
				Quarter:      q.Quarter,
				Total:        utils.RoundMoney(q.Total),
				Calculations: ToCalculationResponses(q.Records),
			}
		}
		resp.Years[i] = HistoryYearResponse{
			Year:     y.Year,
			Total:    utils.RoundMoney(y.Total),
			Quarters: quarters,
		}
	}
	return resp
}
