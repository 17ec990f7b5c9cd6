package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

// weekdayOrder fixes the tie-break order for the peak consumption day.
var weekdayOrder = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// filterDeductions returns the deduct events at or after cutoff, in
// timestamp order. Mutators append events chronologically, but the sort
// keeps the downstream half-split comparison correct even if a caller hands
// the engine an unordered snapshot.
func filterDeductions(events []domain.UsageEvent, cutoff time.Time) []domain.UsageEvent {
	out := make([]domain.UsageEvent, 0, len(events))
	for _, ev := range events {
		if ev.Kind != domain.EventKindDeduct {
			continue
		}
		if ev.Timestamp.Before(cutoff) {
			continue
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	return out
}

// CalculateMetrics reduces an ingredient's windowed deduct events into usage
// statistics. An empty window yields all-zero metrics; there is no error
// case.
func (e *Engine) CalculateMetrics(deductions []domain.UsageEvent, timeframeDays int, costPerUnit float64) domain.UsageMetrics {
	m := domain.UsageMetrics{
		DailyBreakdown: make(map[string]float64, len(weekdayOrder)),
	}
	for _, day := range weekdayOrder {
		m.DailyBreakdown[day] = 0
	}

	for _, ev := range deductions {
		used := math.Abs(ev.Quantity)
		m.TotalUsed += used
		m.DailyBreakdown[ev.Timestamp.Weekday().String()] += used
	}

	m.TransactionCount = len(deductions)
	m.AverageDaily = m.TotalUsed / float64(timeframeDays)
	if m.TransactionCount > 0 {
		m.AveragePerTransaction = m.TotalUsed / float64(m.TransactionCount)
	}
	m.TotalValue = m.TotalUsed * costPerUnit

	if m.TransactionCount > 0 {
		m.PeakDay = peakDay(m.DailyBreakdown)
	}

	return m
}

// peakDay picks the weekday with the highest accumulated consumption, ties
// going to the earlier day in Sunday..Saturday order.
func peakDay(breakdown map[string]float64) string {
	peak := weekdayOrder[0]
	for _, day := range weekdayOrder[1:] {
		if breakdown[day] > breakdown[peak] {
			peak = day
		}
	}

	return peak
}
