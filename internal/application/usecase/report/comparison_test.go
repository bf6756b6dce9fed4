package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCompare(t *testing.T) {
	previous := Window{Start: date(2025, time.May, 1), End: date(2025, time.May, 31)}

	tests := []struct {
		name         string
		current      string
		previousAmt  string
		wantAbsolute string
		wantPercent  float64
	}{
		{
			name:         "increase",
			current:      "150.00",
			previousAmt:  "100.00",
			wantAbsolute: "50.00",
			wantPercent:  50.0,
		},
		{
			name:         "decrease",
			current:      "75.00",
			previousAmt:  "100.00",
			wantAbsolute: "-25.00",
			wantPercent:  -25.0,
		},
		{
			name:         "new spending against an empty previous period",
			current:      "40.00",
			previousAmt:  "0",
			wantAbsolute: "40.00",
			wantPercent:  100.0,
		},
		{
			name:         "two empty periods",
			current:      "0",
			previousAmt:  "0",
			wantAbsolute: "0",
			wantPercent:  0.0,
		},
		{
			name:         "rounded to two decimals",
			current:      "100.00",
			previousAmt:  "30.00",
			wantAbsolute: "70.00",
			wantPercent:  233.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparison := Compare(previous,
				decimal.RequireFromString(tt.current),
				decimal.RequireFromString(tt.previousAmt))

			if !comparison.AbsoluteChange.Equal(decimal.RequireFromString(tt.wantAbsolute)) {
				t.Errorf("expected absolute change %s, got %s", tt.wantAbsolute, comparison.AbsoluteChange)
			}
			if comparison.PercentageChange != tt.wantPercent {
				t.Errorf("expected percentage change %v, got %v", tt.wantPercent, comparison.PercentageChange)
			}
			if !comparison.PreviousStart.Equal(previous.Start) || !comparison.PreviousEnd.Equal(previous.End) {
				t.Error("expected comparison to carry the previous window bounds")
			}
		})
	}
}

func TestPercentOfTotal(t *testing.T) {
	tests := []struct {
		name  string
		part  string
		total string
		want  float64
	}{
		{name: "simple share", part: "30.00", total: "35.00", want: 85.71},
		{name: "small share", part: "5.00", total: "35.00", want: 14.29},
		{name: "zero total guards division", part: "10.00", total: "0", want: 0.0},
		{name: "full share", part: "35.00", total: "35.00", want: 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentOfTotal(decimal.RequireFromString(tt.part), decimal.RequireFromString(tt.total))
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
