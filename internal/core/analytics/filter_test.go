package analytics_test

import (
	"testing"
	"time"

	"github.com/HPG21/czp-releases/internal/core/analytics"
	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(recs []domain.CalculationRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func history() []domain.CalculationRecord {
	return []domain.CalculationRecord{
		rec("2022-11", month(2022, 11), 90000),
		rec("2023-12", month(2023, 12), 100000),
		rec("2024-07", month(2024, 7), 110000),
		rec("2024-10", month(2024, 10), 115000),
		rec("2025-02", month(2025, 2), 120000),
		rec("2025-08", month(2025, 8), 125000),
	}
}

func TestFilter(t *testing.T) {
	now := time.Date(2025, 10, 18, 12, 0, 0, 0, time.UTC)
	year2024 := 2024
	from := time.Date(2024, 10, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts domain.FilterOptions
		want []string
	}{
		{name: "zero value keeps everything", opts: domain.FilterOptions{}, want: ids(history())},
		{name: "all time", opts: domain.FilterOptions{Period: domain.PeriodAllTime}, want: ids(history())},
		{name: "last 3 months", opts: domain.FilterOptions{Period: domain.PeriodLast3Months}, want: []string{"2025-08"}},
		{name: "last 6 months", opts: domain.FilterOptions{Period: domain.PeriodLast6Months}, want: []string{"2025-08"}},
		{name: "last year", opts: domain.FilterOptions{Period: domain.PeriodLastYear}, want: []string{"2025-02", "2025-08"}},
		{name: "last 2 years", opts: domain.FilterOptions{Period: domain.PeriodLast2Years}, want: []string{"2023-12", "2024-07", "2024-10", "2025-02", "2025-08"}},
		{name: "last 3 years", opts: domain.FilterOptions{Period: domain.PeriodLast3Years}, want: ids(history())},
		{name: "year", opts: domain.FilterOptions{Year: &year2024}, want: []string{"2024-07", "2024-10"}},
		{name: "year and period", opts: domain.FilterOptions{Year: &year2024, Period: domain.PeriodLastYear}, want: []string{}},
		{name: "explicit range is month inclusive", opts: domain.FilterOptions{From: &from, To: &to}, want: []string{"2024-10", "2025-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.Filter(history(), tt.opts, now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_PeriodStartIsInclusive(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	recs := []domain.CalculationRecord{rec("jul", month(2025, 7), 1), rec("jun", month(2025, 6), 1)}

	got := analytics.Filter(recs, domain.FilterOptions{Period: domain.PeriodLast3Months}, now)
	assert.Equal(t, []string{"jul"}, ids(got))
}

func TestFilter_PeriodCutoffClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		period domain.Period
		recs   []domain.CalculationRecord
		want   []string
	}{
		{
			name:   "may 31 minus 3 months keeps march",
			now:    time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC),
			period: domain.PeriodLast3Months,
			recs:   []domain.CalculationRecord{rec("2025-03", month(2025, 3), 1), rec("2025-02", month(2025, 2), 1)},
			want:   []string{"2025-03"},
		},
		{
			name:   "aug 31 minus 6 months keeps march",
			now:    time.Date(2025, 8, 31, 9, 0, 0, 0, time.UTC),
			period: domain.PeriodLast6Months,
			recs:   []domain.CalculationRecord{rec("2025-03", month(2025, 3), 1)},
			want:   []string{"2025-03"},
		},
		{
			name:   "leap day minus one year keeps march",
			now:    time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC),
			period: domain.PeriodLastYear,
			recs:   []domain.CalculationRecord{rec("2023-03", month(2023, 3), 1), rec("2023-02", month(2023, 2), 1)},
			want:   []string{"2023-03"},
		},
		{
			name:   "leap day minus two years",
			now:    time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC),
			period: domain.PeriodLast2Years,
			recs:   []domain.CalculationRecord{rec("2022-03", month(2022, 3), 1), rec("2022-02", month(2022, 2), 1)},
			want:   []string{"2022-03"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.Filter(tt.recs, domain.FilterOptions{Period: tt.period}, tt.now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestAvailableYears(t *testing.T) {
	assert.Equal(t, []int{2025, 2024, 2023, 2022}, analytics.AvailableYears(history()))
	assert.Empty(t, analytics.AvailableYears(nil))
}

func TestGroupByYearQuarter(t *testing.T) {
	recs := []domain.CalculationRecord{
		rec("jan", month(2025, 1), 100),
		rec("mar", month(2025, 3), 300),
		rec("aug", month(2025, 8), 800),
		rec("dec24", month(2024, 12), 1200),
	}

	years := analytics.GroupByYearQuarter(recs)

	require.Len(t, years, 2)
	assert.Equal(t, 2025, years[0].Year)
	assert.Equal(t, 1200.0, years[0].Total)
	require.Len(t, years[0].Quarters, 2)
	assert.Equal(t, 3, years[0].Quarters[0].Quarter)
	assert.Equal(t, 800.0, years[0].Quarters[0].Total)
	assert.Equal(t, 1, years[0].Quarters[1].Quarter)
	assert.Equal(t, []string{"mar", "jan"}, ids(years[0].Quarters[1].Records))
	assert.Equal(t, 400.0, years[0].Quarters[1].Total)

	assert.Equal(t, 2024, years[1].Year)
	assert.Equal(t, 4, years[1].Quarters[0].Quarter)

	// input order untouched
	assert.Equal(t, "jan", recs[0].ID)
}

func TestReport_RespectsCards(t *testing.T) {
	now := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	cards := domain.AnalyticsCards{KeyMetrics: true, SalaryTrend: true}
	year := 2025

	report := analytics.Report(history(), domain.FilterOptions{Year: &year}, cards, now)

	require.NotNil(t, report.KeyMetrics)
	assert.Equal(t, 245000.0, report.KeyMetrics.Total)
	require.NotNil(t, report.Trend)
	assert.Equal(t, 5000.0, report.Trend.Change)
	assert.Len(t, report.TrendSeries, 2)
	assert.Nil(t, report.HoursDistribution)
	assert.Nil(t, report.TopMonths)
	assert.Nil(t, report.HourlyEfficiency)
	assert.Nil(t, report.YearComparison)
	assert.Nil(t, report.Taxes)
	assert.Nil(t, report.SalaryRaise)
	assert.Equal(t, 2, report.FilteredCount)
	assert.Equal(t, 6, report.TotalCount)
	assert.Equal(t, []int{2025, 2024, 2023, 2022}, report.AvailableYears)
}

func TestBuild_EmptyHistory(t *testing.T) {
	report := analytics.Build(nil, domain.AllCards())

	require.NotNil(t, report.KeyMetrics)
	assert.Equal(t, domain.KeyMetrics{}, *report.KeyMetrics)
	assert.Nil(t, report.Trend)
	require.NotNil(t, report.TopMonths)
	assert.Nil(t, report.TopMonths.Best)
	require.NotNil(t, report.HourlyEfficiency)
	assert.Nil(t, report.HourlyEfficiency.Stability)
	assert.Zero(t, report.FilteredCount)
}
