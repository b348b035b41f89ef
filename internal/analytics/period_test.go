package analytics

import (
	"testing"
	"time"
)

// TestPeriodWindowAt verifies the calendar arithmetic for each period
func TestPeriodWindowAt(t *testing.T) {
	end := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period   string
		expected time.Time
	}{
		{PeriodWeek, time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)},
		{PeriodQuarter, time.Date(2023, 12, 15, 12, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC)},
		// Unknown labels fall back to the month window
		{"DECADE", time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)},
		// Lower case is accepted
		{"week", time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, gotEnd := periodWindowAt(tt.period, end)
			if !start.Equal(tt.expected) {
				t.Errorf("Expected start %v, got %v", tt.expected, start)
			}
			if !gotEnd.Equal(end) {
				t.Errorf("Expected end %v, got %v", end, gotEnd)
			}
		})
	}
}

// TestPeriodWindowMonthEndClamping verifies AddDate's normalization at
// month boundaries
func TestPeriodWindowMonthEndClamping(t *testing.T) {
	// One month before March 31 normalizes through February into March 2/3
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	start, _ := periodWindowAt(PeriodMonth, end)

	if start.Month() != time.March || start.Day() != 2 {
		t.Errorf("Expected 2024-03-02 from Feb normalization, got %v", start)
	}
}

// TestValidPeriod tests label validation
func TestValidPeriod(t *testing.T) {
	for _, period := range []string{"WEEK", "MONTH", "QUARTER", "YEAR", "week", "Quarter"} {
		if !ValidPeriod(period) {
			t.Errorf("Expected %q to be valid", period)
		}
	}
	for _, period := range []string{"", "DAY", "DECADE", "MONTHLY"} {
		if ValidPeriod(period) {
			t.Errorf("Expected %q to be invalid", period)
		}
	}
}
