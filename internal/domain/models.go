// internal/domain/models.go
package domain

import "time"

// UsageEvent is one recorded movement of an ingredient's stock. Events are
// appended in timestamp order by the inventory mutators (order acceptance,
// manual restock, manual edit) and are never rewritten afterwards.
type UsageEvent struct {
	Timestamp time.Time `json:"timestamp" db:"occurred_at"`
	Kind      string    `json:"kind" db:"kind"`
	// Quantity is signed: negative for consumption, positive for restock.
	Quantity  float64 `json:"quantity" db:"quantity"`
	Remaining float64 `json:"remaining" db:"remaining"`
	Note      string  `json:"note,omitempty" db:"note"`
}

// Ingredient is a stocked raw material together with its usage history.
// The analytics engine treats an Ingredient as a read-only snapshot; all
// mutation happens in the inventory subsystem.
type Ingredient struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Category    string       `json:"category" db:"category"`
	Quantity    float64      `json:"quantity" db:"quantity"`
	Unit        string       `json:"unit" db:"unit"`
	Threshold   float64      `json:"threshold" db:"threshold"`
	CostPerUnit float64      `json:"cost_per_unit" db:"cost_per_unit"`
	Supplier    string       `json:"supplier" db:"supplier"`
	Location    string       `json:"location" db:"location"`
	Events      []UsageEvent `json:"events,omitempty" db:"-"`
}

// UsageMetrics aggregates an ingredient's consumption within a report window.
// Recomputed on every report run, never persisted.
type UsageMetrics struct {
	TotalUsed             float64            `json:"total_used"`
	TransactionCount      int                `json:"transaction_count"`
	AverageDaily          float64            `json:"average_daily"`
	AveragePerTransaction float64            `json:"average_per_transaction"`
	TotalValue            float64            `json:"total_value"`
	DailyBreakdown        map[string]float64 `json:"daily_breakdown"`
	PeakDay               string             `json:"peak_day,omitempty"`
}

// TrendAssessment classifies the direction of an ingredient's consumption
// rate. Confidence is a [0,1] coverage measure over the observed events,
// not a statistical probability.
type TrendAssessment struct {
	Trend         string  `json:"trend"`
	Direction     string  `json:"direction"`
	ChangePercent float64 `json:"change_percent"`
	Confidence    float64 `json:"confidence"`
}

// Forecast projects future consumption from the windowed metrics. The two
// day counters are nil when the adjusted daily rate is zero: with no
// measurable consumption there is no meaningful depletion horizon. Negative
// values are deliberate and mean the ingredient is already past the mark.
type Forecast struct {
	ProjectedWeek      float64 `json:"projected_week"`
	ProjectedMonth     float64 `json:"projected_month"`
	ProjectedQuarter   float64 `json:"projected_quarter"`
	DaysUntilThreshold *int    `json:"days_until_threshold"`
	DaysUntilStockOut  *int    `json:"days_until_stock_out"`
}

// Recommendation is one suggested purchasing action for an ingredient.
type Recommendation struct {
	Kind              string  `json:"kind"`
	Priority          string  `json:"priority"`
	Message           string  `json:"message"`
	SuggestedQuantity float64 `json:"suggested_quantity"`
	EstimatedCost     float64 `json:"estimated_cost"`
	PotentialSavings  float64 `json:"potential_savings,omitempty"`
	Frequency         string  `json:"frequency,omitempty"`
}

// IngredientAnalysis bundles one ingredient's snapshot with everything the
// engine derived from it.
type IngredientAnalysis struct {
	IngredientID    int64            `json:"ingredient_id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Unit            string           `json:"unit"`
	CurrentQuantity float64          `json:"current_quantity"`
	Threshold       float64          `json:"threshold"`
	Status          string           `json:"status"`
	Usage           UsageMetrics     `json:"usage"`
	Trend           TrendAssessment  `json:"trend"`
	Forecast        Forecast         `json:"forecast"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ReportSummary holds the cross-ingredient counts for one report run.
type ReportSummary struct {
	TotalIngredients  int     `json:"total_ingredients"`
	ActiveIngredients int     `json:"active_ingredients"`
	HighUsageCount    int     `json:"high_usage_count"`
	LowUsageCount     int     `json:"low_usage_count"`
	TotalUsageValue   float64 `json:"total_usage_value"`
}

// InsightItem is one ingredient's entry inside an insight.
type InsightItem struct {
	Name          string  `json:"name"`
	TotalUsed     float64 `json:"total_used,omitempty"`
	TotalValue    float64 `json:"total_value,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	ChangePercent float64 `json:"change_percent,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
}

// CostAnalysis summarizes how consumption value spreads across ingredients.
type CostAnalysis struct {
	TotalUsageValue          float64 `json:"total_usage_value"`
	AverageCostPerIngredient float64 `json:"average_cost_per_ingredient"`
	AboveAverageCount        int     `json:"above_average_count"`
}

// Insight is one business observation derived from the full ingredient set.
type Insight struct {
	Kind  string        `json:"kind"`
	Title string        `json:"title"`
	Items []InsightItem `json:"items,omitempty"`
	Cost  *CostAnalysis `json:"cost,omitempty"`
}

// ActionItem is a concrete purchasing task surfaced by the report.
type ActionItem struct {
	Kind             string   `json:"kind"`
	Title            string   `json:"title"`
	Ingredients      []string `json:"ingredients"`
	EstimatedCost    float64  `json:"estimated_cost,omitempty"`
	PotentialSavings float64  `json:"potential_savings,omitempty"`
}

// OverstockedIngredient flags stock sitting well above projected demand.
type OverstockedIngredient struct {
	Name            string  `json:"name"`
	CurrentQuantity float64 `json:"current_quantity"`
	ProjectedMonth  float64 `json:"projected_month"`
}

// CostOptimization rolls up the savings opportunities across the report.
type CostOptimization struct {
	PotentialSavings float64                 `json:"potential_savings"`
	Overstocked      []OverstockedIngredient `json:"overstocked"`
	Recommendation   string                  `json:"recommendation,omitempty"`
}

// AnalysisReport is the sole artifact the analytics engine produces. It has
// no lifecycle beyond one request/response cycle.
type AnalysisReport struct {
	TimeframeDays    int                  `json:"timeframe_days"`
	GeneratedAt      time.Time            `json:"generated_at"`
	Ingredients      []IngredientAnalysis `json:"ingredients"`
	Summary          ReportSummary        `json:"summary"`
	Insights         []Insight            `json:"insights"`
	ActionItems      []ActionItem         `json:"action_items"`
	CostOptimization CostOptimization     `json:"cost_optimization"`
}
