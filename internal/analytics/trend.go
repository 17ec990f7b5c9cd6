package analytics

import (
	"math"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

const (
	// minTrendEvents is the smallest sample the half-split comparison is
	// allowed to run on.
	minTrendEvents = 7
	// trendBandPercent is the dead band around zero change inside which
	// consumption counts as stable.
	trendBandPercent = 10.0
	// fullConfidenceEvents is the sample size at which confidence reaches 1.
	fullConfidenceEvents = 30
)

// DetectTrend classifies whether consumption is rising, falling or stable by
// comparing the mean event magnitude of the earlier half of the window
// against the later half. This is an explainable heuristic, not a
// significance test: confidence only expresses how much data backs the
// classification, capped at fullConfidenceEvents observations.
func (e *Engine) DetectTrend(deductions []domain.UsageEvent) domain.TrendAssessment {
	if len(deductions) < minTrendEvents {
		return domain.TrendAssessment{
			Trend:     domain.TrendInsufficientData,
			Direction: domain.DirectionUnknown,
		}
	}

	mid := len(deductions) / 2
	earlierMean := meanMagnitude(deductions[:mid])
	laterMean := meanMagnitude(deductions[mid:])

	confidence := math.Min(float64(len(deductions))/fullConfidenceEvents, 1)

	// A dormant earlier half gives no base to compute relative change
	// against; treat the trend as flat rather than dividing by zero.
	if earlierMean == 0 {
		return domain.TrendAssessment{
			Trend:      domain.TrendStable,
			Direction:  domain.DirectionSteady,
			Confidence: confidence,
		}
	}

	changePercent := (laterMean - earlierMean) / earlierMean * 100

	trend := domain.TrendStable
	switch {
	case changePercent >= trendBandPercent:
		trend = domain.TrendIncreasing
	case changePercent <= -trendBandPercent:
		trend = domain.TrendDecreasing
	}

	return domain.TrendAssessment{
		Trend:         trend,
		Direction:     domain.DirectionForTrend(trend),
		ChangePercent: changePercent,
		Confidence:    confidence,
	}
}

func meanMagnitude(events []domain.UsageEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	var sum float64
	for _, ev := range events {
		sum += math.Abs(ev.Quantity)
	}

	return sum / float64(len(events))
}
