package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

// rule inspects one ingredient's metrics and forecast and returns a
// recommendation, or nil when it does not trigger. Rules never mutate their
// inputs.
type rule func(ing domain.Ingredient, metrics domain.UsageMetrics, forecast domain.Forecast) *domain.Recommendation

// Recommend evaluates every purchasing rule against the ingredient and
// returns the triggered recommendations ordered by priority, high first.
// Rules sharing a priority keep their evaluation order. An ingredient with
// no usage still receives the recurring economic order suggestion.
func (e *Engine) Recommend(ing domain.Ingredient, metrics domain.UsageMetrics, forecast domain.Forecast) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(e.rules))
	for _, r := range e.rules {
		if rec := r(ing, metrics, forecast); rec != nil {
			recs = append(recs, *rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return domain.PriorityRank(recs[i].Priority) < domain.PriorityRank(recs[j].Priority)
	})

	return recs
}

// reorderRule fires when on-hand stock is at or below the reorder point
// (threshold plus a safety buffer of average daily usage).
func (e *Engine) reorderRule(ing domain.Ingredient, metrics domain.UsageMetrics, _ domain.Forecast) *domain.Recommendation {
	safetyStock := metrics.AverageDaily * float64(e.cfg.SafetyStockDays)
	reorderPoint := ing.Threshold + safetyStock
	if ing.Quantity > reorderPoint {
		return nil
	}

	qty := math.Max(metrics.AverageDaily*float64(e.cfg.EconomicHorizonDays), ing.Threshold*2)

	return &domain.Recommendation{
		Kind:     domain.RecommendationReorder,
		Priority: domain.PriorityHigh,
		Message: fmt.Sprintf("%s is at or below its reorder point: %.1f %s on hand, reorder at %.1f",
			ing.Name, ing.Quantity, ing.Unit, reorderPoint),
		SuggestedQuantity: qty,
		EstimatedCost:     qty * ing.CostPerUnit,
	}
}

// economicOrderRule always fires: a standing monthly order sized to cover
// either a month of usage or twice the threshold, whichever is larger.
func (e *Engine) economicOrderRule(ing domain.Ingredient, metrics domain.UsageMetrics, _ domain.Forecast) *domain.Recommendation {
	monthlyUsage := metrics.AverageDaily * float64(e.cfg.EconomicHorizonDays)
	qty := math.Max(monthlyUsage, ing.Threshold*2)

	return &domain.Recommendation{
		Kind:     domain.RecommendationEconomicOrder,
		Priority: domain.PriorityMedium,
		Message: fmt.Sprintf("Order %.1f %s of %s monthly to cover expected usage",
			qty, ing.Unit, ing.Name),
		SuggestedQuantity: qty,
		EstimatedCost:     qty * ing.CostPerUnit,
		Frequency:         "monthly",
	}
}

// bulkPurchaseRule fires once windowed consumption value clears the bulk
// eligibility bar. Savings use the assumed discount rate from Config.
func (e *Engine) bulkPurchaseRule(ing domain.Ingredient, metrics domain.UsageMetrics, _ domain.Forecast) *domain.Recommendation {
	if metrics.TotalValue <= e.cfg.BulkEligibilityValue {
		return nil
	}

	qty := metrics.AverageDaily * float64(e.cfg.BulkHorizonDays)
	cost := qty * ing.CostPerUnit

	return &domain.Recommendation{
		Kind:     domain.RecommendationBulkPurchase,
		Priority: domain.PriorityLow,
		Message: fmt.Sprintf("%s usage is high enough to negotiate bulk pricing on a %d-day order",
			ing.Name, e.cfg.BulkHorizonDays),
		SuggestedQuantity: qty,
		EstimatedCost:     cost,
		PotentialSavings:  cost * e.cfg.BulkDiscountRate,
	}
}
