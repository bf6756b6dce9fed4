package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxInsights caps how many insights a single report produces.
const MaxInsights = 7

// insightSwingThresholdPct is the period-over-period change, in percent,
// above which spending movement is worth calling out.
const insightSwingThresholdPct = 15.0

// InsightKind classifies the tone of a spending insight.
type InsightKind string

const (
	InsightWarning    InsightKind = "warning"
	InsightPositive   InsightKind = "positive"
	InsightNeutral    InsightKind = "neutral"
	InsightSuggestion InsightKind = "suggestion"
)

// SpendingInsight is one human-readable observation derived from a report.
type SpendingInsight struct {
	Kind    InsightKind     `json:"kind"`
	Message string          `json:"message"`
	IconTag string          `json:"icon_tag"`
	Amount  decimal.Decimal `json:"amount"`
}

// GenerateInsights derives a ranked list of observations from a report and
// its category performances. The priority order is fixed: the
// period-over-period swing first, then one warning per over-budget category,
// then a note on the highest-spending category. Truncation to MaxInsights
// happens only at the end so higher-priority items always survive.
func GenerateInsights(report *ReportResult, performances []CategoryPerformance) []SpendingInsight {
	insights := make([]SpendingInsight, 0, MaxInsights)

	if insight, ok := swingInsight(report); ok {
		insights = append(insights, insight)
	}
	insights = append(insights, overBudgetInsights(performances)...)
	if insight, ok := highestCategoryInsight(report); ok {
		insights = append(insights, insight)
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

// swingInsight reports a large period-over-period movement: a warning for a
// rise and a positive note for a drop, both at the 15% threshold.
func swingInsight(report *ReportResult) (SpendingInsight, bool) {
	change := report.Comparison.PercentageChange
	switch {
	case change >= insightSwingThresholdPct:
		return SpendingInsight{
			Kind:    InsightWarning,
			Message: fmt.Sprintf("Your spending increased by %.1f%% compared to the previous period", change),
			IconTag: "trending-up",
			Amount:  report.Comparison.AbsoluteChange,
		}, true
	case change <= -insightSwingThresholdPct:
		return SpendingInsight{
			Kind:    InsightPositive,
			Message: fmt.Sprintf("Your spending decreased by %.1f%% compared to the previous period", -change),
			IconTag: "trending-down",
			Amount:  report.Comparison.AbsoluteChange.Abs(),
		}, true
	default:
		return SpendingInsight{}, false
	}
}

// overBudgetInsights emits one warning per category that has exceeded its
// budget, in the order the performances were given.
func overBudgetInsights(performances []CategoryPerformance) []SpendingInsight {
	var insights []SpendingInsight
	for _, perf := range performances {
		if perf.BudgetStatus != BudgetStatusOver {
			continue
		}
		over := perf.CurrentTotal.Sub(perf.BudgetAllocated)
		insights = append(insights, SpendingInsight{
			Kind:    InsightWarning,
			Message: fmt.Sprintf("You are over budget in %s by %s", perf.CategoryName, over.StringFixed(2)),
			IconTag: "alert-circle",
			Amount:  over,
		})
	}
	return insights
}

// highestCategoryInsight names the single largest category of the window.
func highestCategoryInsight(report *ReportResult) (SpendingInsight, bool) {
	if len(report.CategoryBreakdown) == 0 {
		return SpendingInsight{}, false
	}

	// The breakdown is already sorted descending by total.
	top := report.CategoryBreakdown[0]
	return SpendingInsight{
		Kind: InsightNeutral,
		Message: fmt.Sprintf("%s is your biggest spending category at %.1f%% of the total",
			top.CategoryName, top.PercentOfTotal),
		IconTag: "pie-chart",
		Amount:  top.Total,
	}, true
}
