package analytics_test

import (
	"testing"
	"time"

	"github.com/HPG21/czp-releases/internal/core/analytics"
	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func rec(id string, date time.Time, net float64) domain.CalculationRecord {
	return domain.CalculationRecord{ID: id, Date: date, TotalPayNet: net}
}

func TestKeyMetrics(t *testing.T) {
	t.Run("empty history yields zeros", func(t *testing.T) {
		m := analytics.KeyMetrics(nil)
		assert.Equal(t, domain.KeyMetrics{}, m)
	})

	t.Run("single record", func(t *testing.T) {
		m := analytics.KeyMetrics([]domain.CalculationRecord{rec("a", month(2024, 5), 151523.35)})
		assert.Equal(t, 151523.35, m.Average)
		assert.Equal(t, 151523.35, m.Max)
		assert.Equal(t, 151523.35, m.Min)
		assert.Equal(t, 151523.35, m.Total)
		assert.Equal(t, 1, m.Count)
	})

	t.Run("several records", func(t *testing.T) {
		m := analytics.KeyMetrics([]domain.CalculationRecord{
			rec("a", month(2024, 1), 100000),
			rec("b", month(2024, 2), 130000),
			rec("c", month(2024, 3), 115000),
		})
		assert.Equal(t, 345000.0, m.Total)
		assert.Equal(t, 115000.0, m.Average)
		assert.Equal(t, 130000.0, m.Max)
		assert.Equal(t, 100000.0, m.Min)
	})

	t.Run("total does not depend on order", func(t *testing.T) {
		recs := []domain.CalculationRecord{
			rec("a", month(2024, 1), 1000),
			rec("b", month(2024, 2), 2000),
			rec("c", month(2024, 3), 4000),
		}
		reversed := []domain.CalculationRecord{recs[2], recs[1], recs[0]}
		assert.Equal(t, analytics.KeyMetrics(recs).Total, analytics.KeyMetrics(reversed).Total)
	})
}

func TestTrend(t *testing.T) {
	t.Run("needs two records", func(t *testing.T) {
		trend, ok := analytics.Trend([]domain.CalculationRecord{rec("a", month(2024, 1), 100000)})
		assert.False(t, ok)
		assert.Nil(t, trend)
	})

	t.Run("change between first and last month", func(t *testing.T) {
		// input order deliberately not chronological
		trend, ok := analytics.Trend([]domain.CalculationRecord{
			rec("b", month(2024, 2), 120000),
			rec("a", month(2024, 1), 100000),
		})
		require.True(t, ok)
		assert.Equal(t, 20000.0, trend.Change)
		assert.InDelta(t, 20.0, trend.ChangePercent, 1e-9)
		assert.True(t, trend.Growing())
		assert.Equal(t, month(2024, 1), trend.FirstDate)
	})

	t.Run("zero first month gives zero percent", func(t *testing.T) {
		trend, ok := analytics.Trend([]domain.CalculationRecord{
			rec("a", month(2024, 1), 0),
			rec("b", month(2024, 2), 5000),
		})
		require.True(t, ok)
		assert.Equal(t, 5000.0, trend.Change)
		assert.Zero(t, trend.ChangePercent)
	})

	t.Run("does not reorder input", func(t *testing.T) {
		recs := []domain.CalculationRecord{rec("b", month(2024, 2), 1), rec("a", month(2024, 1), 2)}
		analytics.Trend(recs)
		assert.Equal(t, "b", recs[0].ID)
	})
}

func TestHoursDistribution(t *testing.T) {
	recs := []domain.CalculationRecord{
		{Date: month(2024, 1), RegularHours: 172, NightHours: 71, HolidayHours: 11},
		{Date: month(2024, 2), RegularHours: 128, NightHours: 29, HolidayHours: 0},
	}

	d := analytics.HoursDistribution(recs)

	assert.Equal(t, 300.0, d.TotalHours)
	assert.Equal(t, 189.0, d.DayHours)
	assert.Equal(t, 100.0, d.NightHours)
	assert.Equal(t, 11.0, d.HolidayHours)
	assert.InDelta(t, 63.0, d.DayPercent, 1e-9)
	assert.InDelta(t, 33.333333333, d.NightPercent, 1e-6)
	assert.InDelta(t, 100.0, d.DayPercent+d.NightPercent+d.HolidayPercent, 1e-9)
	assert.Equal(t, 150.0, d.AvgHoursPerMonth)
	assert.Equal(t, 172.0, d.MaxHoursPerMonth)

	empty := analytics.HoursDistribution(nil)
	assert.Equal(t, domain.HoursDistribution{}, empty)
}

func TestTopMonths(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		top := analytics.TopMonths(nil)
		assert.Nil(t, top.Best)
		assert.Nil(t, top.Worst)
	})

	t.Run("ties resolve to first occurrence", func(t *testing.T) {
		recs := []domain.CalculationRecord{
			rec("low-1", month(2024, 1), 90000),
			rec("high-1", month(2024, 2), 150000),
			rec("high-2", month(2024, 3), 150000),
			rec("low-2", month(2024, 4), 90000),
		}
		top := analytics.TopMonths(recs)
		require.NotNil(t, top.Best)
		require.NotNil(t, top.Worst)
		assert.Equal(t, "high-1", top.Best.ID)
		assert.Equal(t, "low-1", top.Worst.ID)
	})

	t.Run("single record is both", func(t *testing.T) {
		top := analytics.TopMonths([]domain.CalculationRecord{rec("only", month(2024, 1), 1)})
		assert.Equal(t, "only", top.Best.ID)
		assert.Equal(t, "only", top.Worst.ID)
	})
}

func TestHourlyEfficiency(t *testing.T) {
	t.Run("single record has no stability", func(t *testing.T) {
		e := analytics.HourlyEfficiency([]domain.CalculationRecord{{NetHourlyRate: 700}})
		assert.Equal(t, 700.0, e.AverageNetHourlyRate)
		assert.Nil(t, e.Stability)
	})

	t.Run("population standard deviation", func(t *testing.T) {
		e := analytics.HourlyEfficiency([]domain.CalculationRecord{
			{NetHourlyRate: 600},
			{NetHourlyRate: 800},
		})
		assert.Equal(t, 700.0, e.AverageNetHourlyRate)
		assert.Equal(t, 800.0, e.BestNetHourlyRate)
		assert.Equal(t, 600.0, e.WorstNetHourlyRate)
		require.NotNil(t, e.Stability)
		// stddev = 100, 1 - 100/700
		assert.InDelta(t, (1-100.0/700.0)*100, *e.Stability, 1e-9)
	})

	t.Run("identical rates are fully stable", func(t *testing.T) {
		e := analytics.HourlyEfficiency([]domain.CalculationRecord{{NetHourlyRate: 500}, {NetHourlyRate: 500}})
		require.NotNil(t, e.Stability)
		assert.Equal(t, 100.0, *e.Stability)
	})

	t.Run("stability clamps at zero", func(t *testing.T) {
		e := analytics.HourlyEfficiency([]domain.CalculationRecord{{NetHourlyRate: 0}, {NetHourlyRate: 0}, {NetHourlyRate: 1000}})
		require.NotNil(t, e.Stability)
		assert.Equal(t, 0.0, *e.Stability)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, domain.HourlyEfficiency{}, analytics.HourlyEfficiency(nil))
	})
}

func TestYearComparison(t *testing.T) {
	recs := []domain.CalculationRecord{
		rec("a", month(2025, 1), 120000),
		rec("b", month(2023, 11), 90000),
		rec("c", month(2023, 12), 110000),
		rec("d", month(2025, 6), 140000),
	}

	cmp := analytics.YearComparison(recs)

	require.Len(t, cmp.Years, 2)
	assert.True(t, cmp.Comparable)
	assert.Equal(t, domain.YearSummary{Year: 2023, Total: 200000, Average: 100000, Count: 2}, cmp.Years[0])
	assert.Equal(t, domain.YearSummary{Year: 2025, Total: 260000, Average: 130000, Count: 2}, cmp.Years[1])

	single := analytics.YearComparison(recs[:1])
	assert.False(t, single.Comparable)
	assert.Len(t, single.Years, 1)

	assert.Empty(t, analytics.YearComparison(nil).Years)
}

func TestTaxesSummary(t *testing.T) {
	recs := []domain.CalculationRecord{{TotalTaxesPaid: 20000}, {TotalTaxesPaid: 25000}}

	s := analytics.TaxesSummary(recs)
	assert.Equal(t, 45000.0, s.TotalTaxes)
	assert.Equal(t, 22500.0, s.AvgTaxesPerMonth)

	assert.Equal(t, domain.TaxesSummary{}, analytics.TaxesSummary(nil))
}

func TestSalaryRaise(t *testing.T) {
	recs := []domain.CalculationRecord{
		{Date: month(2024, 12), BaseSalaryAmount: 130000},
		{Date: month(2024, 1), BaseSalaryAmount: 120000},
		{Date: month(2025, 3), BaseSalaryAmount: 150000},
		{Date: month(2025, 1), BaseSalaryAmount: 140000},
		{Date: month(2024, 6), BaseSalaryAmount: 125000},
	}

	r := analytics.SalaryRaise(recs)

	assert.Equal(t, 120000.0, r.FirstBaseSalary)
	assert.Equal(t, 150000.0, r.LastBaseSalary)
	assert.Equal(t, 30000.0, r.TotalRaise)
	assert.InDelta(t, 25.0, r.TotalRaisePercent, 1e-9)
	require.Len(t, r.Years, 2)
	assert.Equal(t, 2024, r.Years[0].Year)
	assert.Equal(t, 10000.0, r.Years[0].Raise)
	assert.Equal(t, 2025, r.Years[1].Year)
	assert.Equal(t, 10000.0, r.Years[1].Raise)
	assert.InDelta(t, 10000.0/140000*100, r.Years[1].RaisePercent, 1e-9)

	empty := analytics.SalaryRaise(nil)
	assert.Zero(t, empty.TotalRaise)
	assert.Empty(t, empty.Years)

	zeroBase := analytics.SalaryRaise([]domain.CalculationRecord{
		{Date: month(2024, 1), BaseSalaryAmount: 0},
		{Date: month(2024, 2), BaseSalaryAmount: 1000},
	})
	assert.Zero(t, zeroBase.TotalRaisePercent)
}

func TestTrendSeries(t *testing.T) {
	build := func(n int) []domain.CalculationRecord {
		recs := make([]domain.CalculationRecord, n)
		start := month(2020, 1)
		for i := range recs {
			recs[i] = rec("", start.AddDate(0, i, 0), float64(i))
		}
		return recs
	}

	assert.Len(t, analytics.TrendSeries(build(10)), 10)
	assert.Len(t, analytics.TrendSeries(build(20)), 20)

	// 36 months: step 3 keeps indices 0,3,...,21 (8 points) plus the last 12 (24..35)
	series := analytics.TrendSeries(build(36))
	assert.Len(t, series, 20)
	assert.Equal(t, 0.0, series[0].TotalPayNet)
	assert.Equal(t, 35.0, series[len(series)-1].TotalPayNet)

	assert.Empty(t, analytics.TrendSeries(nil))
}
