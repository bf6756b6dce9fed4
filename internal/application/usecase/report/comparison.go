// Package report contains the reporting and analytics use cases.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodComparison describes how a window's total relates to the total of
// its immediately preceding window of identical length.
type PeriodComparison struct {
	PreviousStart    time.Time       `json:"previous_start"`
	PreviousEnd      time.Time       `json:"previous_end"`
	PreviousTotal    decimal.Decimal `json:"previous_total"`
	AbsoluteChange   decimal.Decimal `json:"absolute_change"`
	PercentageChange float64         `json:"percentage_change"`
}

// Compare builds a PeriodComparison between the current and previous totals.
// A previous total of zero with current spending is reported as a flat 100%
// increase ("new spending") rather than a division fault; two zero totals
// compare as 0%.
func Compare(previous Window, currentTotal, previousTotal decimal.Decimal) PeriodComparison {
	return PeriodComparison{
		PreviousStart:    previous.Start,
		PreviousEnd:      previous.End,
		PreviousTotal:    previousTotal,
		AbsoluteChange:   currentTotal.Sub(previousTotal),
		PercentageChange: percentChange(currentTotal, previousTotal),
	}
}

// percentChange returns the relative change from previous to current as a
// percentage rounded to two decimal places, with the zero-previous rules
// described on Compare.
func percentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return 100.0
		}
		return 0.0
	}

	pct := current.Sub(previous).Mul(decimal.NewFromInt(100)).Div(previous).Round(2)
	f, _ := pct.Float64()
	return f
}

// percentOfTotal returns part/total as a percentage rounded to two decimal
// places, or 0 when the total is zero.
func percentOfTotal(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0.0
	}
	pct := part.Mul(decimal.NewFromInt(100)).Div(total).Round(2)
	f, _ := pct.Float64()
	return f
}
