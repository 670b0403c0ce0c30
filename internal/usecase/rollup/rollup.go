// Package rollup buckets a daily series into daily, weekly or monthly points
// for the sales-trend chart.
package rollup

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

const (
	// DailyLabelLayout labels a single day, e.g. "Jan 2"
	DailyLabelLayout = "Jan 2"
	// MonthlyLabelLayout labels a calendar month, e.g. "Jan 2006"
	MonthlyLabelLayout = "Jan 2006"

	weekSize = 7
)

// ErrUnknownPeriod is returned for a period other than daily, weekly or monthly
var ErrUnknownPeriod = errors.New("unknown rollup period")

// Aggregate rolls points up by period. Output order follows the first
// occurrence of each group in the input; nothing is re-sorted.
func Aggregate(points []domain.DailyPoint, period domain.Period) ([]domain.TrendPoint, error) {
	switch period {
	case domain.PeriodDaily:
		return Daily(points), nil
	case domain.PeriodWeekly:
		return Weekly(points), nil
	case domain.PeriodMonthly:
		return Monthly(points), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}

// Daily passes every point through with a day label
func Daily(points []domain.DailyPoint) []domain.TrendPoint {
	out := make([]domain.TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, domain.TrendPoint{
			Label: p.Date.Format(DailyLabelLayout),
			Date:  p.Date,
			Value: p.Value,
		})
	}
	return out
}

// Weekly sums consecutive chunks of seven points in input order.
// Chunks are not aligned to calendar weeks; the last chunk may be short.
// Each chunk is labelled "Week N" with N taken from the day of month of its
// first point (days 1-7 are week 1, 8-14 week 2, and so on).
func Weekly(points []domain.DailyPoint) []domain.TrendPoint {
	out := make([]domain.TrendPoint, 0, (len(points)+weekSize-1)/weekSize)
	for start := 0; start < len(points); start += weekSize {
		end := min(start+weekSize, len(points))

		sum := decimal.Zero
		for _, p := range points[start:end] {
			sum = sum.Add(p.Value)
		}

		first := points[start].Date
		out = append(out, domain.TrendPoint{
			Label: fmt.Sprintf("Week %d", weekOfMonth(first.Day())),
			Date:  first,
			Value: sum,
		})
	}
	return out
}

// Monthly sums points sharing a calendar month and year.
// The first point seen in a month supplies the group's date.
func Monthly(points []domain.DailyPoint) []domain.TrendPoint {
	out := make([]domain.TrendPoint, 0)
	index := make(map[string]int)

	for _, p := range points {
		label := p.Date.Format(MonthlyLabelLayout)
		if i, ok := index[label]; ok {
			out[i].Value = out[i].Value.Add(p.Value)
			continue
		}
		index[label] = len(out)
		out = append(out, domain.TrendPoint{
			Label: label,
			Date:  p.Date,
			Value: p.Value,
		})
	}
	return out
}

// InRange keeps the points whose day falls inside the range, preserving order
func InRange(points []domain.DailyPoint, dateRange domain.DateRange) []domain.DailyPoint {
	out := make([]domain.DailyPoint, 0, len(points))
	for _, p := range points {
		if dateRange.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out
}

func weekOfMonth(day int) int {
	return (day + weekSize - 1) / weekSize
}
