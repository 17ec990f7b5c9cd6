package domain

import "strings"

// Usage event kinds recorded by the inventory mutators. Only deduct events
// feed the analytics engine.
const (
	EventKindDeduct  = "deduct"
	EventKindRestock = "restock"
)

// Trend classifications.
const (
	TrendInsufficientData = "insufficient_data"
	TrendStable           = "stable"
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
)

// Trend directions.
const (
	DirectionUnknown = "unknown"
	DirectionSteady  = "steady"
	DirectionUp      = "up"
	DirectionDown    = "down"
)

// Recommendation kinds, in evaluation order.
const (
	RecommendationReorder       = "reorder"
	RecommendationEconomicOrder = "economic_order"
	RecommendationBulkPurchase  = "bulk_purchase"
)

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Analysis statuses. An ingredient with invalid numeric config still appears
// in the report but is excluded from the aggregate figures.
const (
	StatusAnalyzed       = "analyzed"
	StatusIncompleteData = "incomplete_data"
)

var trendDirections = map[string]string{
	TrendInsufficientData: DirectionUnknown,
	TrendStable:           DirectionSteady,
	TrendIncreasing:       DirectionUp,
	TrendDecreasing:       DirectionDown,
}

// DirectionForTrend returns the direction tag paired with a trend
// classification.
func DirectionForTrend(trend string) string {
	if dir, ok := trendDirections[trend]; ok {
		return dir
	}

	return DirectionUnknown
}

var priorityRanks = map[string]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// PriorityRank orders priorities for display, high first. Unknown priorities
// sort last.
func PriorityRank(priority string) int {
	if rank, ok := priorityRanks[strings.ToLower(priority)]; ok {
		return rank
	}

	return len(priorityRanks)
}
