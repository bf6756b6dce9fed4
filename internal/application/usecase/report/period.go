// Package report contains the reporting and analytics use cases.
package report

import (
	"time"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Period identifies a named reporting period.
type Period string

const (
	PeriodThisWeek    Period = "THIS_WEEK"
	PeriodThisMonth   Period = "THIS_MONTH"
	PeriodLastMonth   Period = "LAST_MONTH"
	PeriodLast3Months Period = "LAST_3_MONTHS"
	PeriodLast6Months Period = "LAST_6_MONTHS"
	PeriodThisYear    Period = "THIS_YEAR"
	PeriodLastYear    Period = "LAST_YEAR"
	PeriodCustom      Period = "CUSTOM"
)

// Window is an inclusive [Start, End] date range. Both bounds are
// normalized to midnight UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days the window covers, inclusive.
func (w Window) Days() int {
	return daysBetween(w.Start, w.End) + 1
}

// Contains reports whether the given date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// ResolvePeriod maps a named period to its date window relative to the
// reference date (usually today). PeriodCustom is resolved by the caller and
// is rejected here; unknown tokens return ErrInvalidPeriod so callers can
// fall back to PeriodThisMonth.
func ResolvePeriod(period Period, ref time.Time) (Window, error) {
	today := dateOnly(ref)

	switch period {
	case PeriodThisWeek:
		return Window{Start: startOfWeek(today), End: today}, nil
	case PeriodThisMonth:
		return Window{Start: startOfMonth(today), End: today}, nil
	case PeriodLastMonth:
		start := startOfMonth(today).AddDate(0, -1, 0)
		return Window{Start: start, End: endOfMonth(start)}, nil
	case PeriodLast3Months:
		return lastFullMonths(today, 3), nil
	case PeriodLast6Months:
		return lastFullMonths(today, 6), nil
	case PeriodThisYear:
		return Window{Start: time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	case PeriodLastYear:
		return Window{
			Start: time.Date(today.Year()-1, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(today.Year()-1, 12, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	default:
		return Window{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportPeriod,
			"unrecognized report period: "+string(period),
			domainerror.ErrInvalidPeriod,
		)
	}
}

// PreviousWindow returns the comparison window for w: the range of identical
// length ending the day before w starts. Every comparison site uses this one
// rule; for calendar-month periods the predecessor is matched by day count,
// not by calendar months. That asymmetry is documented, accepted behavior.
func PreviousWindow(w Window) Window {
	prevEnd := w.Start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -daysBetween(w.Start, w.End))
	return Window{Start: prevStart, End: prevEnd}
}

// lastFullMonths returns the window covering the n full calendar months
// ending with the month before the reference date's month.
func lastFullMonths(today time.Time, n int) Window {
	end := endOfMonth(startOfMonth(today).AddDate(0, -1, 0))
	start := startOfMonth(today).AddDate(0, -n, 0)
	return Window{Start: start, End: end}
}

// dateOnly strips the time-of-day component and pins the date to UTC so that
// day arithmetic is never affected by DST transitions.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of whole days from start to end.
// Both arguments must already be date-only values.
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// startOfWeek returns the Monday of the week containing the given date.
func startOfWeek(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7
	}
	return date.AddDate(0, 0, -(weekday - 1))
}

// startOfMonth returns the first day of the month containing the given date.
func startOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// endOfMonth returns the last day of the month containing the given date.
func endOfMonth(date time.Time) time.Time {
	return startOfMonth(date).AddDate(0, 1, -1)
}

// monthLabel formats a month as e.g. "Jan 2025", the label format used by
// monthly trend points and chart axes.
func monthLabel(date time.Time) string {
	return date.Format("Jan 2006")
}
