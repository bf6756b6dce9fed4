package report

import (
	"sort"
	"strings"
)

// SortField identifies how a category performance list is ordered.
type SortField string

const (
	SortByAmount SortField = "amount"
	SortByName   SortField = "name"
	SortByBudget SortField = "budget"
	SortByChange SortField = "change"
)

// ParseSortField maps a query parameter to a SortField. Unrecognized or
// empty values resolve to SortByAmount.
func ParseSortField(raw string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(raw))) {
	case SortByName:
		return SortByName
	case SortByBudget:
		return SortByBudget
	case SortByChange:
		return SortByChange
	default:
		return SortByAmount
	}
}

// sortPerformances orders the list in place according to the sort field.
// Every ordering falls back to the category name so the output is stable for
// equal keys.
func sortPerformances(performances []CategoryPerformance, field SortField) {
	less := func(i, j int) bool {
		return performances[i].CategoryName < performances[j].CategoryName
	}

	switch field {
	case SortByName:
		// name ascending is already the fallback
	case SortByBudget:
		less = func(i, j int) bool {
			bi, bj := performances[i].BudgetAmount, performances[j].BudgetAmount
			switch {
			case bi == nil && bj == nil:
				return performances[i].CategoryName < performances[j].CategoryName
			case bi == nil:
				return false // categories without a budget sort last
			case bj == nil:
				return true
			case !bi.Equal(*bj):
				return bi.GreaterThan(*bj)
			default:
				return performances[i].CategoryName < performances[j].CategoryName
			}
		}
	case SortByChange:
		less = func(i, j int) bool {
			if performances[i].PercentageChange != performances[j].PercentageChange {
				return performances[i].PercentageChange > performances[j].PercentageChange
			}
			return performances[i].CategoryName < performances[j].CategoryName
		}
	default: // SortByAmount
		less = func(i, j int) bool {
			if !performances[i].CurrentTotal.Equal(performances[j].CurrentTotal) {
				return performances[i].CurrentTotal.GreaterThan(performances[j].CurrentTotal)
			}
			return performances[i].CategoryName < performances[j].CategoryName
		}
	}

	sort.Slice(performances, less)
}
