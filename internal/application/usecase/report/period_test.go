package report

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriod(t *testing.T) {
	// Wednesday, June 18th 2025.
	ref := date(2025, time.June, 18)

	tests := []struct {
		name      string
		period    Period
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "this week starts on Monday",
			period:    PeriodThisWeek,
			wantStart: date(2025, time.June, 16),
			wantEnd:   date(2025, time.June, 18),
		},
		{
			name:      "this month starts on the 1st",
			period:    PeriodThisMonth,
			wantStart: date(2025, time.June, 1),
			wantEnd:   date(2025, time.June, 18),
		},
		{
			name:      "last month covers the full prior month",
			period:    PeriodLastMonth,
			wantStart: date(2025, time.May, 1),
			wantEnd:   date(2025, time.May, 31),
		},
		{
			name:      "last 3 months are full months ending last month",
			period:    PeriodLast3Months,
			wantStart: date(2025, time.March, 1),
			wantEnd:   date(2025, time.May, 31),
		},
		{
			name:      "last 6 months are full months ending last month",
			period:    PeriodLast6Months,
			wantStart: date(2024, time.December, 1),
			wantEnd:   date(2025, time.May, 31),
		},
		{
			name:      "this year starts January 1st",
			period:    PeriodThisYear,
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.June, 18),
		},
		{
			name:      "last year covers the full prior year",
			period:    PeriodLastYear,
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.December, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := ResolvePeriod(tt.period, ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !window.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %v, got %v", tt.wantStart, window.Start)
			}
			if !window.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %v, got %v", tt.wantEnd, window.End)
			}
		})
	}

	t.Run("unknown token returns ErrInvalidPeriod", func(t *testing.T) {
		_, err := ResolvePeriod(Period("YESTERYEAR"), ref)
		if !errors.Is(err, domainerror.ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("custom token is resolved by the caller, not here", func(t *testing.T) {
		_, err := ResolvePeriod(PeriodCustom, ref)
		if !errors.Is(err, domainerror.ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("this week on a Sunday goes back to the previous Monday", func(t *testing.T) {
		sunday := date(2025, time.June, 22)
		window, err := ResolvePeriod(PeriodThisWeek, sunday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !window.Start.Equal(date(2025, time.June, 16)) {
			t.Errorf("expected Monday June 16th, got %v", window.Start)
		}
	})
}

func TestPreviousWindow(t *testing.T) {
	tests := []struct {
		name      string
		window    Window
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "one day window",
			window:    Window{Start: date(2025, time.June, 10), End: date(2025, time.June, 10)},
			wantStart: date(2025, time.June, 9),
			wantEnd:   date(2025, time.June, 9),
		},
		{
			name:      "week long window",
			window:    Window{Start: date(2025, time.June, 9), End: date(2025, time.June, 15)},
			wantStart: date(2025, time.June, 2),
			wantEnd:   date(2025, time.June, 8),
		},
		{
			name:      "calendar month predecessor matches by day count",
			window:    Window{Start: date(2025, time.March, 1), End: date(2025, time.March, 31)},
			wantStart: date(2025, time.January, 29),
			wantEnd:   date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := PreviousWindow(tt.window)
			if !previous.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %v, got %v", tt.wantStart, previous.Start)
			}
			if !previous.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %v, got %v", tt.wantEnd, previous.End)
			}

			// The predecessor always ends the day before the window starts
			// and covers the same number of days.
			if !previous.End.AddDate(0, 0, 1).Equal(tt.window.Start) {
				t.Error("expected previous window to end the day before the current one starts")
			}
			if previous.Days() != tt.window.Days() {
				t.Errorf("expected %d days, got %d", tt.window.Days(), previous.Days())
			}
		})
	}
}

func TestWindowDays(t *testing.T) {
	window := Window{Start: date(2025, time.June, 1), End: date(2025, time.June, 30)}
	if got := window.Days(); got != 30 {
		t.Errorf("expected 30 days, got %d", got)
	}

	single := Window{Start: date(2025, time.June, 1), End: date(2025, time.June, 1)}
	if got := single.Days(); got != 1 {
		t.Errorf("expected 1 day, got %d", got)
	}
}
