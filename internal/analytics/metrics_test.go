package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// deductions builds n consumption events of the given size, one per day
// counting back from end.
func deductions(n int, qty float64, end time.Time) []domain.UsageEvent {
	events := make([]domain.UsageEvent, 0, n)
	for i := n - 1; i >= 0; i-- {
		events = append(events, domain.UsageEvent{
			Timestamp: end.AddDate(0, 0, -i),
			Kind:      domain.EventKindDeduct,
			Quantity:  -qty,
		})
	}
	return events
}

func TestCalculateMetrics(t *testing.T) {
	e := NewEngine(Config{})
	cutoff := testNow.AddDate(0, 0, -30)

	t.Run("sums absolute magnitudes of windowed deductions", func(t *testing.T) {
		events := deductions(10, 3, testNow)
		m := e.CalculateMetrics(filterDeductions(events, cutoff), 30, 2.5)

		assert.InDelta(t, 30.0, m.TotalUsed, 1e-9)
		assert.Equal(t, 10, m.TransactionCount)
		assert.InDelta(t, 1.0, m.AverageDaily, 1e-9)
		assert.InDelta(t, 3.0, m.AveragePerTransaction, 1e-9)
		assert.InDelta(t, 75.0, m.TotalValue, 1e-9)
	})

	t.Run("ignores restocks and events before the cutoff", func(t *testing.T) {
		events := []domain.UsageEvent{
			{Timestamp: testNow.AddDate(0, 0, -40), Kind: domain.EventKindDeduct, Quantity: -100},
			{Timestamp: testNow.AddDate(0, 0, -5), Kind: domain.EventKindRestock, Quantity: 50},
			{Timestamp: testNow.AddDate(0, 0, -5), Kind: domain.EventKindDeduct, Quantity: -4},
		}
		m := e.CalculateMetrics(filterDeductions(events, cutoff), 30, 1)

		assert.InDelta(t, 4.0, m.TotalUsed, 1e-9)
		assert.Equal(t, 1, m.TransactionCount)
	})

	t.Run("zero qualifying events yields all-zero metrics", func(t *testing.T) {
		m := e.CalculateMetrics(nil, 30, 9.99)

		assert.Zero(t, m.TotalUsed)
		assert.Zero(t, m.TransactionCount)
		assert.Zero(t, m.AverageDaily)
		assert.Zero(t, m.AveragePerTransaction)
		assert.Zero(t, m.TotalValue)
		assert.Empty(t, m.PeakDay)
		require.Len(t, m.DailyBreakdown, 7)
		for day, v := range m.DailyBreakdown {
			assert.Zerof(t, v, "bucket %s", day)
		}
	})

	t.Run("totals are independent of input event order", func(t *testing.T) {
		events := deductions(12, 2.5, testNow)
		shuffled := make([]domain.UsageEvent, len(events))
		copy(shuffled, events)
		rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		a := e.CalculateMetrics(filterDeductions(events, cutoff), 30, 4)
		b := e.CalculateMetrics(filterDeductions(shuffled, cutoff), 30, 4)

		assert.Equal(t, a, b)
	})
}

func TestCalculateMetricsPeakDay(t *testing.T) {
	e := NewEngine(Config{})
	cutoff := testNow.AddDate(0, 0, -30)

	// testNow is a Saturday; stack extra usage on a Wednesday.
	wednesday := time.Date(2025, 2, 19, 9, 0, 0, 0, time.UTC)
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	events := []domain.UsageEvent{
		{Timestamp: wednesday, Kind: domain.EventKindDeduct, Quantity: -8},
		{Timestamp: wednesday.AddDate(0, 0, 7), Kind: domain.EventKindDeduct, Quantity: -8},
		{Timestamp: testNow, Kind: domain.EventKindDeduct, Quantity: -5},
	}

	m := e.CalculateMetrics(filterDeductions(events, cutoff), 30, 1)
	assert.Equal(t, "Wednesday", m.PeakDay)
	assert.InDelta(t, 16.0, m.DailyBreakdown["Wednesday"], 1e-9)
	assert.InDelta(t, 5.0, m.DailyBreakdown["Saturday"], 1e-9)
}

func TestPeakDayTieBreak(t *testing.T) {
	breakdown := map[string]float64{
		"Sunday": 0, "Monday": 4, "Tuesday": 0, "Wednesday": 4,
		"Thursday": 0, "Friday": 0, "Saturday": 0,
	}
	// Monday comes before Wednesday in the fixed Sunday..Saturday order.
	assert.Equal(t, "Monday", peakDay(breakdown))
}
