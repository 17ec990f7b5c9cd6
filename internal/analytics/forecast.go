package analytics

import (
	"math"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

// Forecast projects future consumption for an ingredient. The average daily
// rate is scaled by the observed trend, then clamped at zero so a steep
// decline can never imply negative consumption. When the adjusted rate is
// zero, the day counters stay nil: "not applicable" must not be confused
// with "depletes today" or "never depletes". Negative day counts are kept
// as-is; they signal that stock is already past the mark.
func (e *Engine) Forecast(metrics domain.UsageMetrics, trend domain.TrendAssessment, quantity, threshold float64) domain.Forecast {
	adjustedDaily := metrics.AverageDaily
	switch trend.Trend {
	case domain.TrendIncreasing:
		adjustedDaily *= 1 + trend.ChangePercent/100
	case domain.TrendDecreasing:
		adjustedDaily *= 1 - math.Abs(trend.ChangePercent)/100
	}
	if adjustedDaily < 0 {
		adjustedDaily = 0
	}

	f := domain.Forecast{
		ProjectedWeek:    adjustedDaily * 7,
		ProjectedMonth:   adjustedDaily * 30,
		ProjectedQuarter: adjustedDaily * 90,
	}

	if adjustedDaily > 0 {
		untilThreshold := int(math.Floor((quantity - threshold) / adjustedDaily))
		untilStockOut := int(math.Floor(quantity / adjustedDaily))
		f.DaysUntilThreshold = &untilThreshold
		f.DaysUntilStockOut = &untilStockOut
	}

	return f
}
