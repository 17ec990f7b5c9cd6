package analytics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

// highUsageThresholdShare
// An active ingredient counts as high-usage when its daily consumption
// exceeds this share of its reorder threshold.
const highUsageThresholdShare = 0.1

// Generate runs the full analysis over an ingredient snapshot and assembles
// the cross-ingredient report. The caller supplies now so repeated runs over
// the same snapshot produce identical output. Ingredients are analyzed
// independently on a bounded worker pool; the aggregation step joins on all
// of them before sorting and summarizing.
//
// The snapshot must be consistent: callers load ingredients and their events
// in one query set and hand the result over, rather than re-reading live
// state while the report is being computed.
func (e *Engine) Generate(ingredients []domain.Ingredient, timeframeDays int, now time.Time) (*domain.AnalysisReport, error) {
	if timeframeDays <= 0 {
		return nil, domain.ErrInvalidTimeframe
	}

	cutoff := now.AddDate(0, 0, -timeframeDays)

	analyses := make([]domain.IngredientAnalysis, len(ingredients))

	workers := e.cfg.WorkerCount
	if workers > len(ingredients) {
		workers = len(ingredients)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, len(ingredients))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				analyses[i] = e.analyzeIngredient(ingredients[i], cutoff, timeframeDays)
			}
		}()
	}
	for i := range ingredients {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Descending by consumption value, name as tiebreak so output order is
	// deterministic.
	sort.SliceStable(analyses, func(i, j int) bool {
		if analyses[i].Usage.TotalValue != analyses[j].Usage.TotalValue {
			return analyses[i].Usage.TotalValue > analyses[j].Usage.TotalValue
		}
		return analyses[i].Name < analyses[j].Name
	})

	report := &domain.AnalysisReport{
		TimeframeDays:    timeframeDays,
		GeneratedAt:      now,
		Ingredients:      analyses,
		Summary:          summarize(analyses),
		Insights:         buildInsights(analyses),
		ActionItems:      buildActionItems(analyses),
		CostOptimization: buildCostOptimization(analyses),
	}

	return report, nil
}

// analyzeIngredient runs metrics, trend, forecast and recommendations for a
// single ingredient. Malformed numeric config flags the record instead of
// failing the whole report.
func (e *Engine) analyzeIngredient(ing domain.Ingredient, cutoff time.Time, timeframeDays int) domain.IngredientAnalysis {
	analysis := domain.IngredientAnalysis{
		IngredientID:    ing.ID,
		Name:            ing.Name,
		Category:        ing.Category,
		Unit:            ing.Unit,
		CurrentQuantity: ing.Quantity,
		Threshold:       ing.Threshold,
		Status:          domain.StatusAnalyzed,
		Recommendations: []domain.Recommendation{},
	}

	if !validNumericConfig(ing) {
		analysis.Status = domain.StatusIncompleteData
		analysis.Usage = e.CalculateMetrics(nil, timeframeDays, 0)
		analysis.Trend = domain.TrendAssessment{
			Trend:     domain.TrendInsufficientData,
			Direction: domain.DirectionUnknown,
		}
		return analysis
	}

	deductions := filterDeductions(ing.Events, cutoff)

	analysis.Usage = e.CalculateMetrics(deductions, timeframeDays, ing.CostPerUnit)
	analysis.Trend = e.DetectTrend(deductions)
	analysis.Forecast = e.Forecast(analysis.Usage, analysis.Trend, ing.Quantity, ing.Threshold)
	analysis.Recommendations = e.Recommend(ing, analysis.Usage, analysis.Forecast)

	return analysis
}

// validNumericConfig rejects ingredients whose stored numbers violate the
// inventory invariants (quantity, threshold and unit cost are all >= 0).
func validNumericConfig(ing domain.Ingredient) bool {
	for _, v := range []float64{ing.Quantity, ing.Threshold, ing.CostPerUnit} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

func summarize(analyses []domain.IngredientAnalysis) domain.ReportSummary {
	s := domain.ReportSummary{TotalIngredients: len(analyses)}

	for _, a := range analyses {
		if a.Status != domain.StatusAnalyzed {
			continue
		}
		if a.Usage.TotalUsed <= 0 {
			continue
		}

		s.ActiveIngredients++
		s.TotalUsageValue += a.Usage.TotalValue
		if a.Usage.AverageDaily > a.Threshold*highUsageThresholdShare {
			s.HighUsageCount++
		} else {
			s.LowUsageCount++
		}
	}

	return s
}

func buildInsights(analyses []domain.IngredientAnalysis) []domain.Insight {
	insights := make([]domain.Insight, 0, 3)

	// An empty snapshot yields an empty insight list, not zero-valued
	// placeholder insights.
	if len(analyses) == 0 {
		return insights
	}

	active := make([]domain.IngredientAnalysis, 0, len(analyses))
	for _, a := range analyses {
		if a.Status == domain.StatusAnalyzed && a.Usage.TotalUsed > 0 {
			active = append(active, a)
		}
	}

	// Top consumers: analyses arrive sorted descending by value, so the
	// first five active entries are the top five.
	topN := len(active)
	if topN > 5 {
		topN = 5
	}
	if topN > 0 {
		items := make([]domain.InsightItem, 0, topN)
		for _, a := range active[:topN] {
			items = append(items, domain.InsightItem{
				Name:       a.Name,
				TotalUsed:  a.Usage.TotalUsed,
				TotalValue: a.Usage.TotalValue,
				Unit:       a.Unit,
			})
		}
		insights = append(insights, domain.Insight{
			Kind:  "top_consumers",
			Title: "Highest-value ingredients this period",
			Items: items,
		})
	}

	// Rising usage: confident upward trends only.
	var rising []domain.InsightItem
	for _, a := range analyses {
		if a.Status != domain.StatusAnalyzed {
			continue
		}
		if a.Trend.Trend == domain.TrendIncreasing && a.Trend.Confidence > 0.5 {
			rising = append(rising, domain.InsightItem{
				Name:          a.Name,
				ChangePercent: a.Trend.ChangePercent,
				Confidence:    a.Trend.Confidence,
			})
		}
	}
	if len(rising) > 0 {
		insights = append(insights, domain.Insight{
			Kind:  "rising_usage",
			Title: "Ingredients with rising consumption",
			Items: rising,
		})
	}

	// Cost analysis over the active set.
	cost := domain.CostAnalysis{}
	for _, a := range active {
		cost.TotalUsageValue += a.Usage.TotalValue
	}
	if len(active) > 0 {
		cost.AverageCostPerIngredient = cost.TotalUsageValue / float64(len(active))
	}
	for _, a := range active {
		if a.Usage.TotalValue > cost.AverageCostPerIngredient*2 {
			cost.AboveAverageCount++
		}
	}
	insights = append(insights, domain.Insight{
		Kind:  "cost_analysis",
		Title: "Consumption value distribution",
		Cost:  &cost,
	})

	return insights
}

func buildActionItems(analyses []domain.IngredientAnalysis) []domain.ActionItem {
	items := make([]domain.ActionItem, 0, 2)

	var (
		reorderNames []string
		reorderCost  float64
		bulkNames    []string
		bulkSavings  float64
	)

	for _, a := range analyses {
		for _, rec := range a.Recommendations {
			switch rec.Kind {
			case domain.RecommendationReorder:
				reorderNames = append(reorderNames, a.Name)
				reorderCost += rec.EstimatedCost
			case domain.RecommendationBulkPurchase:
				bulkNames = append(bulkNames, a.Name)
				bulkSavings += rec.PotentialSavings
			}
		}
	}

	if len(reorderNames) > 0 {
		items = append(items, domain.ActionItem{
			Kind:          "immediate_reorders",
			Title:         "Reorder now",
			Ingredients:   reorderNames,
			EstimatedCost: reorderCost,
		})
	}
	if len(bulkNames) > 0 {
		items = append(items, domain.ActionItem{
			Kind:             "bulk_opportunities",
			Title:            "Bulk purchase opportunities",
			Ingredients:      bulkNames,
			PotentialSavings: bulkSavings,
		})
	}

	return items
}

func buildCostOptimization(analyses []domain.IngredientAnalysis) domain.CostOptimization {
	opt := domain.CostOptimization{
		Overstocked: []domain.OverstockedIngredient{},
	}

	for _, a := range analyses {
		for _, rec := range a.Recommendations {
			if rec.Kind == domain.RecommendationBulkPurchase {
				opt.PotentialSavings += rec.PotentialSavings
			}
		}

		// Only ingredients with projected demand can be overstocked; idle
		// stock is a different problem than over-ordering.
		if a.Status == domain.StatusAnalyzed &&
			a.Forecast.ProjectedMonth > 0 &&
			a.CurrentQuantity > a.Forecast.ProjectedMonth*2 {
			opt.Overstocked = append(opt.Overstocked, domain.OverstockedIngredient{
				Name:            a.Name,
				CurrentQuantity: a.CurrentQuantity,
				ProjectedMonth:  a.Forecast.ProjectedMonth,
			})
		}
	}

	if len(opt.Overstocked) > 0 {
		opt.Recommendation = "Reduce reorder quantities for overstocked ingredients"
	}

	return opt
}
