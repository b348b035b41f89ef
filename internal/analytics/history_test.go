package analytics

import (
	"testing"
	"time"

	"trading-mind-backend/internal/database"
)

// TestAnalyzeStateHistoryEmpty tests the no-data summary
func TestAnalyzeStateHistoryEmpty(t *testing.T) {
	result := AnalyzeStateHistory(nil, 10)

	if len(result.History) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(result.History))
	}
	sum := result.Summary
	if sum.TotalChanges != 0 || sum.MostCommonState != StateNeutral ||
		sum.AverageConfidence != 50 || sum.Volatility != 0 {
		t.Errorf("Unexpected summary: %+v", sum)
	}
}

// TestAnalyzeStateHistoryRecordsChanges replays a win streak turning into
// losses and expects the state shift to be recorded
func TestAnalyzeStateHistoryRecordsChanges(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var trades []database.Trade
	// 5 winners then 5 losers
	for i := 0; i < 10; i++ {
		pnl := 100.0
		if i >= 5 {
			pnl = -100.0
		}
		trades = append(trades, database.Trade{
			ID:                    "t" + string(rune('0'+i)),
			EntryTime:             base.Add(time.Duration(i) * time.Hour),
			RiskPercentUsed:       1.5,
			ProfitLoss:            pnl,
			TargetPercentAchieved: 100,
			Session:               database.SessionLondon,
		})
	}

	result := AnalyzeStateHistory(trades, 10)

	if len(result.History) < 2 {
		t.Fatalf("Expected at least 2 history entries, got %d", len(result.History))
	}

	first := result.History[0]
	if first.State != StateConfident {
		t.Errorf("Expected first window CONFIDENT, got %s", first.State)
	}
	if first.Trigger != "Profitable trade" {
		t.Errorf("Expected trigger 'Profitable trade', got %s", first.Trigger)
	}
	if first.Context.TradeID != trades[0].ID || first.Context.ProfitLoss != 100 {
		t.Errorf("Context does not match originating trade: %+v", first.Context)
	}

	last := result.History[len(result.History)-1]
	if last.State != StateFrustrated {
		t.Errorf("Expected losing streak to end FRUSTRATED, got %s", last.State)
	}
	if last.Trigger != "Losing trade" {
		t.Errorf("Expected trigger 'Losing trade', got %s", last.Trigger)
	}

	// Entries are in chronological order
	for i := 1; i < len(result.History); i++ {
		if result.History[i].Timestamp.Before(result.History[i-1].Timestamp) {
			t.Error("History entries not in chronological order")
		}
	}

	if result.Summary.TotalChanges != len(result.History) {
		t.Errorf("Summary count %d does not match history length %d",
			result.Summary.TotalChanges, len(result.History))
	}
}

// TestAnalyzeStateHistorySortsInput verifies out-of-order trades are
// replayed chronologically
func TestAnalyzeStateHistorySortsInput(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	trades := []database.Trade{
		{ID: "late", EntryTime: base.Add(2 * time.Hour), ProfitLoss: -100, RiskPercentUsed: 1.5, TargetPercentAchieved: 100},
		{ID: "early", EntryTime: base, ProfitLoss: 100, RiskPercentUsed: 1.5, TargetPercentAchieved: 100},
	}

	result := AnalyzeStateHistory(trades, 10)

	if len(result.History) == 0 {
		t.Fatal("Expected history entries")
	}
	if result.History[0].Context.TradeID != "early" {
		t.Errorf("Expected replay to start at the earliest trade, got %s",
			result.History[0].Context.TradeID)
	}
}

// TestAnalyzeStateHistoryLimit verifies the entry cap
func TestAnalyzeStateHistoryLimit(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var trades []database.Trade
	// Alternate wins and losses to force frequent state flips
	for i := 0; i < 20; i++ {
		pnl := 100.0
		if i%2 == 1 {
			pnl = -100.0
		}
		trades = append(trades, database.Trade{
			EntryTime:             base.Add(time.Duration(i) * time.Hour),
			RiskPercentUsed:       1.5,
			ProfitLoss:            pnl,
			TargetPercentAchieved: 100,
		})
	}

	result := AnalyzeStateHistory(trades, 3)

	if len(result.History) > 3 {
		t.Errorf("Expected at most 3 entries, got %d", len(result.History))
	}
}

// TestStateTriggerPrecedence tests the trigger label precedence
func TestStateTriggerPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		trade    database.Trade
		expected string
	}{
		{"profit wins over flags", database.Trade{ProfitLoss: 10, ExitedEarly: true, StopLossHit: true}, "Profitable trade"},
		{"loss wins over flags", database.Trade{ProfitLoss: -10, StopLossHit: true}, "Losing trade"},
		{"early exit at breakeven", database.Trade{ExitedEarly: true}, "Early exit"},
		{"stop loss at breakeven", database.Trade{StopLossHit: true}, "Stop loss hit"},
		{"plain execution", database.Trade{}, "Trade execution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stateTrigger(tt.trade); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
