package domain

import "time"

// Period selects a trailing window of history relative to "now".
type Period string

const (
	PeriodAllTime     Period = "ALL_TIME"
	PeriodLast3Months Period = "LAST_3_MONTHS"
	PeriodLast6Months Period = "LAST_6_MONTHS"
	PeriodLastYear    Period = "LAST_YEAR"
	PeriodLast2Years  Period = "LAST_2_YEARS"
	PeriodLast3Years  Period = "LAST_3_YEARS"
)

// IsValid reports whether p is a known period.
func (p Period) IsValid() bool {
	switch p {
	case PeriodAllTime, PeriodLast3Months, PeriodLast6Months, PeriodLastYear, PeriodLast2Years, PeriodLast3Years:
		return true
	}
	return false
}

// FilterOptions narrows a history before aggregation. Zero value keeps everything.
type FilterOptions struct {
	Period Period
	Year   *int
	From   *time.Time // inclusive, month granularity
	To     *time.Time // inclusive, month granularity
}

// KeyMetrics summarizes net pay across a set of records.
type KeyMetrics struct {
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
}

// Trend compares the chronologically first and last records.
type Trend struct {
	FirstDate     time.Time `json:"firstDate"`
	LastDate      time.Time `json:"lastDate"`
	FirstNet      float64   `json:"firstNet"`
	LastNet       float64   `json:"lastNet"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
}

// Growing reports whether net pay went up between the first and last month.
func (t Trend) Growing() bool {
	return t.LastNet > t.FirstNet
}

// TrendPoint is one month on the net pay chart.
type TrendPoint struct {
	Date        time.Time `json:"date"`
	TotalPayNet float64   `json:"totalPayNet"`
}

// HoursDistribution splits worked hours into day, night and holiday buckets.
type HoursDistribution struct {
	DayHours         float64 `json:"dayHours"`
	NightHours       float64 `json:"nightHours"`
	HolidayHours     float64 `json:"holidayHours"`
	TotalHours       float64 `json:"totalHours"`
	DayPercent       float64 `json:"dayPercent"`
	NightPercent     float64 `json:"nightPercent"`
	HolidayPercent   float64 `json:"holidayPercent"`
	AvgHoursPerMonth float64 `json:"avgHoursPerMonth"`
	MaxHoursPerMonth float64 `json:"maxHoursPerMonth"`
}

// TopMonths holds the best and worst paid months. Both are nil for an empty history.
type TopMonths struct {
	Best  *CalculationRecord `json:"best"`
	Worst *CalculationRecord `json:"worst"`
}

// HourlyEfficiency describes how the net hourly rate moved. Stability is nil with fewer than two records.
type HourlyEfficiency struct {
	AverageNetHourlyRate float64  `json:"averageNetHourlyRate"`
	BestNetHourlyRate    float64  `json:"bestNetHourlyRate"`
	WorstNetHourlyRate   float64  `json:"worstNetHourlyRate"`
	Stability            *float64 `json:"stability"`
}

// YearSummary is the net pay of a single calendar year.
type YearSummary struct {
	Year    int     `json:"year"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// YearComparison lists per-year totals in ascending year order.
type YearComparison struct {
	Years      []YearSummary `json:"years"`
	Comparable bool          `json:"comparable"` // at least two distinct years
}

// TaxesSummary totals the income tax withheld.
type TaxesSummary struct {
	TotalTaxes       float64 `json:"totalTaxes"`
	AvgTaxesPerMonth float64 `json:"avgTaxesPerMonth"`
}

// YearRaise is the base salary change inside one calendar year.
type YearRaise struct {
	Year            int     `json:"year"`
	FirstBaseSalary float64 `json:"firstBaseSalary"`
	LastBaseSalary  float64 `json:"lastBaseSalary"`
	Raise           float64 `json:"raise"`
	RaisePercent    float64 `json:"raisePercent"`
}

// SalaryRaise is the base salary change across the whole set and per year.
type SalaryRaise struct {
	FirstBaseSalary   float64     `json:"firstBaseSalary"`
	LastBaseSalary    float64     `json:"lastBaseSalary"`
	TotalRaise        float64     `json:"totalRaise"`
	TotalRaisePercent float64     `json:"totalRaisePercent"`
	Years             []YearRaise `json:"years"`
}

// AnalyticsReport bundles the metrics enabled by the user's card toggles.
// A nil bundle means the card is disabled or, for Trend, that there is not enough data.
type AnalyticsReport struct {
	KeyMetrics        *KeyMetrics        `json:"keyMetrics,omitempty"`
	Trend             *Trend             `json:"trend,omitempty"`
	TrendSeries       []TrendPoint       `json:"trendSeries,omitempty"`
	HoursDistribution *HoursDistribution `json:"hoursDistribution,omitempty"`
	TopMonths         *TopMonths         `json:"topMonths,omitempty"`
	HourlyEfficiency  *HourlyEfficiency  `json:"hourlyEfficiency,omitempty"`
	YearComparison    *YearComparison    `json:"yearComparison,omitempty"`
	Taxes             *TaxesSummary      `json:"taxes,omitempty"`
	SalaryRaise       *SalaryRaise       `json:"salaryRaise,omitempty"`
	AvailableYears    []int              `json:"availableYears"`
	FilteredCount     int                `json:"filteredCount"`
	TotalCount        int                `json:"totalCount"`
}

// HistoryQuarter groups the records of one quarter, newest month first.
type HistoryQuarter struct {
	Quarter int                 `json:"quarter"`
	Total   float64             `json:"total"`
	Records []CalculationRecord `json:"records"`
}

// HistoryYear groups the quarters of one year, newest quarter first.
type HistoryYear struct {
	Year     int              `json:"year"`
	Total    float64          `json:"total"`
	Quarters []HistoryQuarter `json:"quarters"`
}
