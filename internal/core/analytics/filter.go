package analytics

import (
	"sort"
	"time"

	"github.com/HPG21/czp-releases/internal/core/domain"
)

// periodCutoff returns the earliest date kept by p, or false when p keeps everything.
func periodCutoff(p domain.Period, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case domain.PeriodLast3Months:
		return minusMonths(today, 3), true
	case domain.PeriodLast6Months:
		return minusMonths(today, 6), true
	case domain.PeriodLastYear:
		return minusMonths(today, 12), true
	case domain.PeriodLast2Years:
		return minusMonths(today, 24), true
	case domain.PeriodLast3Years:
		return minusMonths(today, 36), true
	default:
		return time.Time{}, false
	}
}

// minusMonths steps back n calendar months, clamping the day to the end of the
// target month (May 31 minus 3 months is Feb 28, not Mar 3).
func minusMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), lastDay)-1)
}

// Filter keeps the records matching opts, preserving input order.
// The period window is measured back from now and is inclusive of its start date.
func Filter(recs []domain.CalculationRecord, opts domain.FilterOptions, now time.Time) []domain.CalculationRecord {
	cutoff, hasCutoff := periodCutoff(opts.Period, now)
	var from, to time.Time
	if opts.From != nil {
		from = domain.MonthStart(*opts.From)
	}
	if opts.To != nil {
		to = domain.MonthStart(*opts.To)
	}

	filtered := make([]domain.CalculationRecord, 0, len(recs))
	for _, r := range recs {
		if opts.Year != nil && r.Date.Year() != *opts.Year {
			continue
		}
		if hasCutoff && r.Date.Before(cutoff) {
			continue
		}
		month := domain.MonthStart(r.Date)
		if opts.From != nil && month.Before(from) {
			continue
		}
		if opts.To != nil && month.After(to) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// AvailableYears lists the distinct years present, newest first.
func AvailableYears(recs []domain.CalculationRecord) []int {
	return sortedYears(groupByYear(recs), true)
}

// GroupByYearQuarter arranges a history for display: years newest first, quarters newest
// first inside each year, and records newest month first inside each quarter.
func GroupByYearQuarter(recs []domain.CalculationRecord) []domain.HistoryYear {
	byYear := groupByYear(recs)
	years := make([]domain.HistoryYear, 0, len(byYear))
	for _, year := range sortedYears(byYear, true) {
		hy := domain.HistoryYear{Year: year}

		byQuarter := make(map[int][]domain.CalculationRecord)
		for _, r := range byYear[year] {
			hy.Total += r.TotalPayNet
			byQuarter[r.Quarter()] = append(byQuarter[r.Quarter()], r)
		}
		for _, q := range sortedYears(byQuarter, true) {
			quarterRecs := byQuarter[q]
			sort.SliceStable(quarterRecs, func(i, j int) bool {
				return quarterRecs[i].Date.Month() > quarterRecs[j].Date.Month()
			})
			hq := domain.HistoryQuarter{Quarter: q, Records: quarterRecs}
			for _, r := range quarterRecs {
				hq.Total += r.TotalPayNet
			}
			hy.Quarters = append(hy.Quarters, hq)
		}
		years = append(years, hy)
	}
	return years
}
