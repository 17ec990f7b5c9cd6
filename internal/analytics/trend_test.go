package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

func TestDetectTrendInsufficientData(t *testing.T) {
	e := NewEngine(Config{})

	for _, n := range []int{0, 1, 6} {
		t.Run(fmt.Sprintf("%d events", n), func(t *testing.T) {
			got := e.DetectTrend(deductions(n, 5, testNow))

			assert.Equal(t, domain.TrendInsufficientData, got.Trend)
			assert.Equal(t, domain.DirectionUnknown, got.Direction)
			assert.Zero(t, got.ChangePercent)
			assert.Zero(t, got.Confidence)
		})
	}
}

func TestDetectTrendClassification(t *testing.T) {
	e := NewEngine(Config{})

	tests := []struct {
		name          string
		earlierQty    float64
		laterQty      float64
		wantTrend     string
		wantDirection string
		wantChange    float64
	}{
		{"flat usage is stable", 10, 10, domain.TrendStable, domain.DirectionSteady, 0},
		{"small change stays inside the stable band", 10, 10.9, domain.TrendStable, domain.DirectionSteady, 9},
		{"ten percent growth is increasing", 10, 11, domain.TrendIncreasing, domain.DirectionUp, 10},
		{"strong growth is increasing", 10, 15, domain.TrendIncreasing, domain.DirectionUp, 50},
		{"ten percent decline is decreasing", 10, 9, domain.TrendDecreasing, domain.DirectionDown, -10},
		{"strong decline is decreasing", 10, 4, domain.TrendDecreasing, domain.DirectionDown, -60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := append(
				deductions(5, tt.earlierQty, testNow.AddDate(0, 0, -5)),
				deductions(5, tt.laterQty, testNow)...,
			)

			got := e.DetectTrend(events)
			assert.Equal(t, tt.wantTrend, got.Trend)
			assert.Equal(t, tt.wantDirection, got.Direction)
			assert.InDelta(t, tt.wantChange, got.ChangePercent, 1e-9)
		})
	}
}

func TestDetectTrendZeroEarlierMean(t *testing.T) {
	e := NewEngine(Config{})

	// Earlier half consumed nothing; relative change is undefined, so the
	// detector reports stable instead of dividing by zero.
	events := append(
		deductions(5, 0, testNow.AddDate(0, 0, -5)),
		deductions(5, 12, testNow)...,
	)

	got := e.DetectTrend(events)
	assert.Equal(t, domain.TrendStable, got.Trend)
	assert.Equal(t, domain.DirectionSteady, got.Direction)
	assert.Zero(t, got.ChangePercent)
	assert.Greater(t, got.Confidence, 0.0)
}

func TestDetectTrendConfidenceGrowsWithSampleSize(t *testing.T) {
	e := NewEngine(Config{})

	prev := 0.0
	for n := minTrendEvents; n <= 40; n++ {
		got := e.DetectTrend(deductions(n, 5, testNow))
		require.GreaterOrEqualf(t, got.Confidence, prev, "confidence regressed at %d events", n)
		prev = got.Confidence
	}

	assert.InDelta(t, 1.0, e.DetectTrend(deductions(30, 5, testNow)).Confidence, 1e-9)
	assert.InDelta(t, 1.0, e.DetectTrend(deductions(40, 5, testNow)).Confidence, 1e-9)
}

func TestDetectTrendFortyEventRamp(t *testing.T) {
	e := NewEngine(Config{})

	// 40 events whose later half runs at 150% of the earlier half.
	events := append(
		deductions(20, 10, testNow.AddDate(0, 0, -20)),
		deductions(20, 15, testNow)...,
	)

	got := e.DetectTrend(events)
	assert.Equal(t, domain.TrendIncreasing, got.Trend)
	assert.InDelta(t, 50.0, got.ChangePercent, 1e-9)
	assert.InDelta(t, 1.0, got.Confidence, 1e-9)
}
