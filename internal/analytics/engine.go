// Package analytics derives usage statistics, trend assessments, depletion
// forecasts and purchasing recommendations from ingredient usage history.
// Every computation is a pure function of the snapshot it is handed: the
// package performs no I/O and keeps no state between report runs.
package analytics

// Config holds the tunable constants of the replenishment policy. The bulk
// discount rate and the bulk eligibility value are business assumptions, not
// measured figures; they are configuration precisely so the purchasing team
// can revisit them without a code change.
type Config struct {
	// SafetyStockDays is the buffer of average daily usage added on top of
	// the reorder threshold when deciding whether to reorder now.
	SafetyStockDays int
	// EconomicHorizonDays is the purchase horizon of the recurring
	// economic order, and of the reorder suggestion quantity.
	EconomicHorizonDays int
	// BulkHorizonDays is the purchase horizon of a bulk order.
	BulkHorizonDays int
	// BulkEligibilityValue is the minimum consumption value in the report
	// window before bulk pricing is worth pursuing.
	BulkEligibilityValue float64
	// BulkDiscountRate is the assumed discount on bulk purchases.
	BulkDiscountRate float64
	// WorkerCount bounds the per-ingredient analysis parallelism.
	WorkerCount int
}

// DefaultConfig returns the stock policy constants.
func DefaultConfig() Config {
	return Config{
		SafetyStockDays:      7,
		EconomicHorizonDays:  30,
		BulkHorizonDays:      60,
		BulkEligibilityValue: 100,
		BulkDiscountRate:     0.10,
		WorkerCount:          4,
	}
}

// Engine runs the usage analysis over an ingredient snapshot.
type Engine struct {
	cfg   Config
	rules []rule
}

// NewEngine creates an engine with the given policy configuration.
// Zero-valued fields fall back to the defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.SafetyStockDays <= 0 {
		cfg.SafetyStockDays = def.SafetyStockDays
	}
	if cfg.EconomicHorizonDays <= 0 {
		cfg.EconomicHorizonDays = def.EconomicHorizonDays
	}
	if cfg.BulkHorizonDays <= 0 {
		cfg.BulkHorizonDays = def.BulkHorizonDays
	}
	if cfg.BulkEligibilityValue <= 0 {
		cfg.BulkEligibilityValue = def.BulkEligibilityValue
	}
	if cfg.BulkDiscountRate <= 0 {
		cfg.BulkDiscountRate = def.BulkDiscountRate
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = def.WorkerCount
	}

	e := &Engine{cfg: cfg}
	// Fixed evaluation order; every rule is checked independently and all
	// that trigger are emitted.
	e.rules = []rule{
		e.reorderRule,
		e.economicOrderRule,
		e.bulkPurchaseRule,
	}

	return e
}
