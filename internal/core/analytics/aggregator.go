// Package analytics aggregates a salary history into display-ready statistics.
//
// Every function here is pure: inputs are never mutated (sorting works on a copy) and
// every result is freshly allocated, so the functions are safe for concurrent use.
package analytics

import (
	"math"
	"sort"

	"github.com/HPG21/czp-releases/internal/core/domain"
)

// KeyMetrics returns average, max, min and total net pay. An empty set yields zeros.
func KeyMetrics(recs []domain.CalculationRecord) domain.KeyMetrics {
	if len(recs) == 0 {
		return domain.KeyMetrics{}
	}
	m := domain.KeyMetrics{
		Max:   recs[0].TotalPayNet,
		Min:   recs[0].TotalPayNet,
		Count: len(recs),
	}
	for _, r := range recs {
		m.Total += r.TotalPayNet
		m.Max = math.Max(m.Max, r.TotalPayNet)
		m.Min = math.Min(m.Min, r.TotalPayNet)
	}
	m.Average = m.Total / float64(len(recs))
	return m
}

// Trend compares the chronologically first and last month. It needs at least two records.
func Trend(recs []domain.CalculationRecord) (*domain.Trend, bool) {
	if len(recs) < 2 {
		return nil, false
	}
	sorted := sortedByDate(recs)
	first, last := sorted[0], sorted[len(sorted)-1]

	trend := &domain.Trend{
		FirstDate: first.Date,
		LastDate:  last.Date,
		FirstNet:  first.TotalPayNet,
		LastNet:   last.TotalPayNet,
		Change:    last.TotalPayNet - first.TotalPayNet,
	}
	if first.TotalPayNet != 0 {
		trend.ChangePercent = trend.Change / first.TotalPayNet * 100
	}
	return trend, true
}

// HoursDistribution splits the worked hours into day, night and holiday buckets.
// Night and holiday hours are part of regular hours, so day = regular - night - holiday.
func HoursDistribution(recs []domain.CalculationRecord) domain.HoursDistribution {
	var d domain.HoursDistribution
	for _, r := range recs {
		d.DayHours += r.RegularHours - r.NightHours - r.HolidayHours
		d.NightHours += r.NightHours
		d.HolidayHours += r.HolidayHours
		d.TotalHours += r.RegularHours
		d.MaxHoursPerMonth = math.Max(d.MaxHoursPerMonth, r.RegularHours)
	}
	if len(recs) > 0 {
		d.AvgHoursPerMonth = d.TotalHours / float64(len(recs))
	}
	if d.TotalHours != 0 {
		d.DayPercent = d.DayHours / d.TotalHours * 100
		d.NightPercent = d.NightHours / d.TotalHours * 100
		d.HolidayPercent = d.HolidayHours / d.TotalHours * 100
	}
	return d
}

// TopMonths returns the best and worst paid months; ties go to the earliest in input order.
func TopMonths(recs []domain.CalculationRecord) domain.TopMonths {
	if len(recs) == 0 {
		return domain.TopMonths{}
	}
	best, worst := 0, 0
	for i, r := range recs {
		if r.TotalPayNet > recs[best].TotalPayNet {
			best = i
		}
		if r.TotalPayNet < recs[worst].TotalPayNet {
			worst = i
		}
	}
	b, w := recs[best], recs[worst]
	return domain.TopMonths{Best: &b, Worst: &w}
}

// HourlyEfficiency describes the net hourly rate across the set.
// Stability uses the population standard deviation and is only computed for two or more records.
func HourlyEfficiency(recs []domain.CalculationRecord) domain.HourlyEfficiency {
	if len(recs) == 0 {
		return domain.HourlyEfficiency{}
	}
	e := domain.HourlyEfficiency{
		BestNetHourlyRate:  recs[0].NetHourlyRate,
		WorstNetHourlyRate: recs[0].NetHourlyRate,
	}
	sum := 0.0
	for _, r := range recs {
		sum += r.NetHourlyRate
		e.BestNetHourlyRate = math.Max(e.BestNetHourlyRate, r.NetHourlyRate)
		e.WorstNetHourlyRate = math.Min(e.WorstNetHourlyRate, r.NetHourlyRate)
	}
	e.AverageNetHourlyRate = sum / float64(len(recs))

	if len(recs) >= 2 {
		stability := 0.0
		if e.AverageNetHourlyRate > 0 {
			variance := 0.0
			for _, r := range recs {
				diff := r.NetHourlyRate - e.AverageNetHourlyRate
				variance += diff * diff
			}
			variance /= float64(len(recs))
			stability = clamp((1-math.Sqrt(variance)/e.AverageNetHourlyRate)*100, 0, 100)
		}
		e.Stability = &stability
	}
	return e
}

// YearComparison totals net pay per calendar year, oldest year first.
func YearComparison(recs []domain.CalculationRecord) domain.YearComparison {
	byYear := groupByYear(recs)
	years := sortedYears(byYear, false)

	summaries := make([]domain.YearSummary, 0, len(years))
	for _, year := range years {
		yearRecs := byYear[year]
		total := 0.0
		for _, r := range yearRecs {
			total += r.TotalPayNet
		}
		summaries = append(summaries, domain.YearSummary{
			Year:    year,
			Total:   total,
			Average: total / float64(len(yearRecs)),
			Count:   len(yearRecs),
		})
	}
	return domain.YearComparison{Years: summaries, Comparable: len(summaries) >= 2}
}

// TaxesSummary totals the income tax withheld.
func TaxesSummary(recs []domain.CalculationRecord) domain.TaxesSummary {
	var s domain.TaxesSummary
	for _, r := range recs {
		s.TotalTaxes += r.TotalTaxesPaid
	}
	if len(recs) > 0 {
		s.AvgTaxesPerMonth = s.TotalTaxes / float64(len(recs))
	}
	return s
}

// SalaryRaise measures base salary growth from the first to the last month, overall and per year.
func SalaryRaise(recs []domain.CalculationRecord) domain.SalaryRaise {
	raise := domain.SalaryRaise{Years: []domain.YearRaise{}}
	if len(recs) == 0 {
		return raise
	}
	sorted := sortedByDate(recs)
	raise.FirstBaseSalary = sorted[0].BaseSalaryAmount
	raise.LastBaseSalary = sorted[len(sorted)-1].BaseSalaryAmount
	raise.TotalRaise = raise.LastBaseSalary - raise.FirstBaseSalary
	raise.TotalRaisePercent = percentOf(raise.TotalRaise, raise.FirstBaseSalary)

	byYear := groupByYear(sorted)
	for _, year := range sortedYears(byYear, false) {
		yearRecs := byYear[year]
		first := yearRecs[0].BaseSalaryAmount
		last := yearRecs[len(yearRecs)-1].BaseSalaryAmount
		raise.Years = append(raise.Years, domain.YearRaise{
			Year:            year,
			FirstBaseSalary: first,
			LastBaseSalary:  last,
			Raise:           last - first,
			RaisePercent:    percentOf(last-first, first),
		})
	}
	return raise
}

// chartWindow is the number of most recent months always shown on the trend chart.
const chartWindow = 12

// TrendSeries returns chart points in date order. Long histories are thinned: every
// step-th month is kept plus the most recent chartWindow months.
func TrendSeries(recs []domain.CalculationRecord) []domain.TrendPoint {
	sorted := sortedByDate(recs)
	step := 1
	if len(sorted) > 2*chartWindow {
		step = len(sorted) / chartWindow
	}
	points := make([]domain.TrendPoint, 0, len(sorted))
	for i, r := range sorted {
		if len(sorted) > chartWindow && i%step != 0 && i < len(sorted)-chartWindow {
			continue
		}
		points = append(points, domain.TrendPoint{Date: r.Date, TotalPayNet: r.TotalPayNet})
	}
	return points
}

func sortedByDate(recs []domain.CalculationRecord) []domain.CalculationRecord {
	sorted := make([]domain.CalculationRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

func groupByYear(recs []domain.CalculationRecord) map[int][]domain.CalculationRecord {
	byYear := make(map[int][]domain.CalculationRecord)
	for _, r := range recs {
		byYear[r.Date.Year()] = append(byYear[r.Date.Year()], r)
	}
	return byYear
}

func sortedYears[T any](byYear map[int]T, descending bool) []int {
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Slice(years, func(i, j int) bool {
		if descending {
			return years[i] > years[j]
		}
		return years[i] < years[j]
	})
	return years
}

func percentOf(delta, base float64) float64 {
	if base == 0 {
		return 0
	}
	return delta / base * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
