package dto

import (
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/HPG21/czp-releases/internal/utils"
	"github.com/shopspring/decimal"
)

// AnalyticsQuery holds the query parameters of the analytics report.
type AnalyticsQuery struct {
	Period   string  `form:"period" binding:"omitempty,oneof=ALL_TIME LAST_3_MONTHS LAST_6_MONTHS LAST_YEAR LAST_2_YEARS LAST_3_YEARS"`
	Year     *int    `form:"year" binding:"omitempty,min=1900,max=2100"`
	FromDate *string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate   *string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
}

// ToFilterOptions parses the query into domain filter options.
func (q AnalyticsQuery) ToFilterOptions() (domain.FilterOptions, error) {
	opts := domain.FilterOptions{Period: domain.PeriodAllTime, Year: q.Year}
	if q.Period != "" {
		opts.Period = domain.Period(q.Period)
		if !opts.Period.IsValid() {
			return domain.FilterOptions{}, apperrors.Validationf("unknown period %q", q.Period)
		}
	}
	if q.FromDate != nil {
		from, err := time.Parse(DateLayout, *q.FromDate)
		if err != nil {
			return domain.FilterOptions{}, apperrors.Validationf("invalid fromDate %q", *q.FromDate)
		}
		opts.From = &from
	}
	if q.ToDate != nil {
		to, err := time.Parse(DateLayout, *q.ToDate)
		if err != nil {
			return domain.FilterOptions{}, apperrors.Validationf("invalid toDate %q", *q.ToDate)
		}
		opts.To = &to
	}
	if opts.From != nil && opts.To != nil && opts.To.Before(*opts.From) {
		return domain.FilterOptions{}, apperrors.Validationf("toDate must not be before fromDate")
	}
	return opts, nil
}

// KeyMetricsResponse is the rounded net pay summary.
type KeyMetricsResponse struct {
	Average decimal.Decimal `json:"average"`
	Max     decimal.Decimal `json:"max"`
	Min     decimal.Decimal `json:"min"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
}

// TrendResponse compares the first and last month.
type TrendResponse struct {
	FirstDate     time.Time       `json:"firstDate"`
	LastDate      time.Time       `json:"lastDate"`
	FirstNet      decimal.Decimal `json:"firstNet"`
	LastNet       decimal.Decimal `json:"lastNet"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	Growing       bool            `json:"growing"`
}

// TrendPointResponse is one point of the net pay chart.
type TrendPointResponse struct {
	Date        time.Time       `json:"date"`
	TotalPayNet decimal.Decimal `json:"totalPayNet"`
}

// HoursDistributionResponse splits worked hours.
type HoursDistributionResponse struct {
	DayHours         float64         `json:"dayHours"`
	NightHours       float64         `json:"nightHours"`
	HolidayHours     float64         `json:"holidayHours"`
	TotalHours       float64         `json:"totalHours"`
	DayPercent       decimal.Decimal `json:"dayPercent"`
	NightPercent     decimal.Decimal `json:"nightPercent"`
	HolidayPercent   decimal.Decimal `json:"holidayPercent"`
	AvgHoursPerMonth decimal.Decimal `json:"avgHoursPerMonth"`
	MaxHoursPerMonth float64         `json:"maxHoursPerMonth"`
}

// TopMonthsResponse holds the best and worst month, nil for an empty history.
type TopMonthsResponse struct {
	Best  *CalculationResponse `json:"best"`
	Worst *CalculationResponse `json:"worst"`
}

// HourlyEfficiencyResponse describes the net hourly rate spread.
type HourlyEfficiencyResponse struct {
	AverageNetHourlyRate decimal.Decimal  `json:"averageNetHourlyRate"`
	BestNetHourlyRate    decimal.Decimal  `json:"bestNetHourlyRate"`
	WorstNetHourlyRate   decimal.Decimal  `json:"worstNetHourlyRate"`
	Stability            *decimal.Decimal `json:"stability"`
}

// YearSummaryResponse is one row of the year comparison.
type YearSummaryResponse struct {
	Year    int             `json:"year"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

// YearComparisonResponse lists per-year totals.
type YearComparisonResponse struct {
	Years      []YearSummaryResponse `json:"years"`
	Comparable bool                  `json:"comparable"`
}

// TaxesSummaryResponse totals withheld tax.
type TaxesSummaryResponse struct {
	TotalTaxes       decimal.Decimal `json:"totalTaxes"`
	AvgTaxesPerMonth decimal.Decimal `json:"avgTaxesPerMonth"`
}

// YearRaiseResponse is the base salary change inside one year.
type YearRaiseResponse struct {
	Year            int             `json:"year"`
	FirstBaseSalary decimal.Decimal `json:"firstBaseSalary"`
	LastBaseSalary  decimal.Decimal `json:"lastBaseSalary"`
	Raise           decimal.Decimal `json:"raise"`
	RaisePercent    decimal.Decimal `json:"raisePercent"`
}

// SalaryRaiseResponse is the base salary change overall and per year.
type SalaryRaiseResponse struct {
	FirstBaseSalary   decimal.Decimal     `json:"firstBaseSalary"`
	LastBaseSalary    decimal.Decimal     `json:"lastBaseSalary"`
	TotalRaise        decimal.Decimal     `json:"totalRaise"`
	TotalRaisePercent decimal.Decimal     `json:"totalRaisePercent"`
	Years             []YearRaiseResponse `json:"years"`
}

// AnalyticsResponse is the analytics report. Disabled cards are omitted.
type AnalyticsResponse struct {
	KeyMetrics        *KeyMetricsResponse        `json:"keyMetrics,omitempty"`
	Trend             *TrendResponse             `json:"trend,omitempty"`
	TrendSeries       []TrendPointResponse       `json:"trendSeries,omitempty"`
	HoursDistribution *HoursDistributionResponse `json:"hoursDistribution,omitempty"`
	TopMonths         *TopMonthsResponse         `json:"topMonths,omitempty"`
	HourlyEfficiency  *HourlyEfficiencyResponse  `json:"hourlyEfficiency,omitempty"`
	YearComparison    *YearComparisonResponse    `json:"yearComparison,omitempty"`
	Taxes             *TaxesSummaryResponse      `json:"taxes,omitempty"`
	SalaryRaise       *SalaryRaiseResponse       `json:"salaryRaise,omitempty"`
	AvailableYears    []int                      `json:"availableYears"`
	FilteredCount     int                        `json:"filteredCount"`
	TotalCount        int                        `json:"totalCount"`
}

func toOptionalCalculation(r *domain.CalculationRecord) *CalculationResponse {
	if r == nil {
		return nil
	}
	resp := ToCalculationResponse(r)
	return &resp
}

// ToAnalyticsResponse converts a domain.AnalyticsReport to its rounded DTO.
func ToAnalyticsResponse(r domain.AnalyticsReport) AnalyticsResponse {
	resp := AnalyticsResponse{
		AvailableYears: r.AvailableYears,
		FilteredCount:  r.FilteredCount,
		TotalCount:     r.TotalCount,
	}
	if resp.AvailableYears == nil {
		resp.AvailableYears = []int{}
	}

	if m := r.KeyMetrics; m != nil {
		resp.KeyMetrics = &KeyMetricsResponse{
			Average: utils.RoundMoney(m.Average),
			Max:     utils.RoundMoney(m.Max),
			Min:     utils.RoundMoney(m.Min),
			Total:   utils.RoundMoney(m.Total),
			Count:   m.Count,
		}
	}
	if t := r.Trend; t != nil {
		resp.Trend = &TrendResponse{
			FirstDate:     t.FirstDate,
			LastDate:      t.LastDate,
			FirstNet:      utils.RoundMoney(t.FirstNet),
			LastNet:       utils.RoundMoney(t.LastNet),
			Change:        utils.RoundMoney(t.Change),
			ChangePercent: utils.RoundPercent(t.ChangePercent),
			Growing:       t.Growing(),
		}
	}
	if r.TrendSeries != nil {
		resp.TrendSeries = make([]TrendPointResponse, len(r.TrendSeries))
		for i, p := range r.TrendSeries {
			resp.TrendSeries[i] = TrendPointResponse{Date: p.Date, TotalPayNet: utils.RoundMoney(p.TotalPayNet)}
		}
	}
	if h := r.HoursDistribution; h != nil {
		resp.HoursDistribution = &HoursDistributionResponse{
			DayHours:         h.DayHours,
			NightHours:       h.NightHours,
			HolidayHours:     h.HolidayHours,
			TotalHours:       h.TotalHours,
			DayPercent:       utils.RoundPercent(h.DayPercent),
			NightPercent:     utils.RoundPercent(h.NightPercent),
			HolidayPercent:   utils.RoundPercent(h.HolidayPercent),
			AvgHoursPerMonth: utils.RoundPercent(h.AvgHoursPerMonth),
			MaxHoursPerMonth: h.MaxHoursPerMonth,
		}
	}
	if tm := r.TopMonths; tm != nil {
		resp.TopMonths = &TopMonthsResponse{
			Best:  toOptionalCalculation(tm.Best),
			Worst: toOptionalCalculation(tm.Worst),
		}
	}
	if e := r.HourlyEfficiency; e != nil {
		eff := &HourlyEfficiencyResponse{
			AverageNetHourlyRate: utils.RoundRate(e.AverageNetHourlyRate),
			BestNetHourlyRate:    utils.RoundRate(e.BestNetHourlyRate),
			WorstNetHourlyRate:   utils.RoundRate(e.WorstNetHourlyRate),
		}
		if e.Stability != nil {
			stability := utils.RoundPercent(*e.Stability)
			eff.Stability = &stability
		}
		resp.HourlyEfficiency = eff
	}
	if yc := r.YearComparison; yc != nil {
		years := make([]YearSummaryResponse, len(yc.Years))
		for i, y := range yc.Years {
			years[i] = YearSummaryResponse{
				Year:    y.Year,
				Total:   utils.RoundMoney(y.Total),
				Average: utils.RoundMoney(y.Average),
				Count:   y.Count,
			}
		}
		resp.YearComparison = &YearComparisonResponse{Years: years, Comparable: yc.Comparable}
	}
	if tx := r.Taxes; tx != nil {
		resp.Taxes = &TaxesSummaryResponse{
			TotalTaxes:       utils.RoundMoney(tx.TotalTaxes),
			AvgTaxesPerMonth: utils.RoundMoney(tx.AvgTaxesPerMonth),
		}
	}
	if sr := r.SalaryRaise; sr != nil {
		years := make([]YearRaiseResponse, len(sr.Years))
		for i, y := range sr.Years {
			years[i] = YearRaiseResponse{
				Year:            y.Year,
				FirstBaseSalary: utils.RoundMoney(y.FirstBaseSalary),
				LastBaseSalary:  utils.RoundMoney(y.LastBaseSalary),
				Raise:           utils.RoundMoney(y.Raise),
				RaisePercent:    utils.RoundPercent(y.RaisePercent),
			}
		}
		resp.SalaryRaise = &SalaryRaiseResponse{
			FirstBaseSalary:   utils.RoundMoney(sr.FirstBaseSalary),
			LastBaseSalary:    utils.RoundMoney(sr.LastBaseSalary),
			TotalRaise:        utils.RoundMoney(sr.TotalRaise),
			TotalRaisePercent: utils.RoundPercent(sr.TotalRaisePercent),
			Years:             years,
		}
	}
	return resp
}
