package analytics

import (
	"time"

	"github.com/HPG21/czp-releases/internal/core/domain"
)

// Build computes the metric bundles enabled in cards over recs.
func Build(recs []domain.CalculationRecord, cards domain.AnalyticsCards) domain.AnalyticsReport {
	report := domain.AnalyticsReport{
		AvailableYears: AvailableYears(recs),
		FilteredCount:  len(recs),
		TotalCount:     len(recs),
	}
	if cards.KeyMetrics {
		m := KeyMetrics(recs)
		report.KeyMetrics = &m
	}
	if cards.SalaryTrend {
		report.Trend, _ = Trend(recs)
		report.TrendSeries = TrendSeries(recs)
	}
	if cards.HoursDistribution {
		d := HoursDistribution(recs)
		report.HoursDistribution = &d
	}
	if cards.TopMonths {
		t := TopMonths(recs)
		report.TopMonths = &t
	}
	if cards.HourlyEfficiency {
		e := HourlyEfficiency(recs)
		report.HourlyEfficiency = &e
	}
	if cards.YearComparison {
		y := YearComparison(recs)
		report.YearComparison = &y
	}
	if cards.SalaryGrowth {
		s := TaxesSummary(recs)
		report.Taxes = &s
	}
	if cards.SalaryRaise {
		r := SalaryRaise(recs)
		report.SalaryRaise = &r
	}
	return report
}

// Report filters the full history with opts and builds the report over what is left.
// AvailableYears and TotalCount describe the unfiltered history.
func Report(all []domain.CalculationRecord, opts domain.FilterOptions, cards domain.AnalyticsCards, now time.Time) domain.AnalyticsReport {
	filtered := Filter(all, opts, now)
	report := Build(filtered, cards)
	report.AvailableYears = AvailableYears(all)
	report.TotalCount = len(all)
	return report
}
