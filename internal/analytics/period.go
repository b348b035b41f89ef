package analytics

import (
	"strings"
	"time"
)

// Period labels accepted by the insights and dashboard entry points.
const (
	PeriodWeek    = "WEEK"
	PeriodMonth   = "MONTH"
	PeriodQuarter = "QUARTER"
	PeriodYear    = "YEAR"
)

// PeriodWindow returns the [start, end] time window for a period label,
// ending now. Unknown labels fall back to the MONTH window.
func PeriodWindow(period string) (time.Time, time.Time) {
	return periodWindowAt(period, time.Now())
}

// periodWindowAt computes the window against a fixed end time. Month and
// year subtraction follow calendar semantics, not fixed day counts.
func periodWindowAt(period string, end time.Time) (time.Time, time.Time) {
	switch strings.ToUpper(period) {
	case PeriodWeek:
		return end.AddDate(0, 0, -7), end
	case PeriodQuarter:
		return end.AddDate(0, -3, 0), end
	case PeriodYear:
		return end.AddDate(-1, 0, 0), end
	default: // MONTH and anything unrecognized
		return end.AddDate(0, -1, 0), end
	}
}

// ValidPeriod reports whether the label is one of the accepted periods.
func ValidPeriod(period string) bool {
	switch strings.ToUpper(period) {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}
