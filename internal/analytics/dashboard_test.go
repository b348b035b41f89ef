package analytics

import (
	"testing"
	"time"

	"trading-mind-backend/internal/database"
)

// TestCalculateDailyPnLGroupsByUTCDate verifies grouping and ascending order
func TestCalculateDailyPnLGroupsByUTCDate(t *testing.T) {
	trades := []database.Trade{
		{EntryTime: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), ProfitLoss: 50},
		{EntryTime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), ProfitLoss: 100},
		{EntryTime: time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC), ProfitLoss: -30},
		// 23:30 New York time on Mar 1 is Mar 2 in UTC
		{EntryTime: time.Date(2024, 3, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)), ProfitLoss: 10},
	}

	daily := calculateDailyPnL(trades)

	if len(daily) != 2 {
		t.Fatalf("Expected 2 days, got %d: %+v", len(daily), daily)
	}
	if daily[0].Date != "2024-03-01" || !floatEquals(daily[0].PnL, 70) || daily[0].Trades != 2 {
		t.Errorf("Unexpected first day: %+v", daily[0])
	}
	if daily[1].Date != "2024-03-02" || !floatEquals(daily[1].PnL, 60) || daily[1].Trades != 2 {
		t.Errorf("Unexpected second day: %+v", daily[1])
	}
}

// TestCalculateSessionPerformance verifies per-session aggregation in
// first-seen order
func TestCalculateSessionPerformance(t *testing.T) {
	trades := makeTrades(100, -50, 200, -100)
	trades[0].Session = database.SessionNY
	trades[1].Session = database.SessionLondon
	trades[2].Session = database.SessionNY
	trades[3].Session = database.SessionLondon

	sessions := calculateSessionPerformance(trades)

	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Session != database.SessionNY {
		t.Errorf("Expected first-seen NY first, got %s", sessions[0].Session)
	}
	if sessions[0].Trades != 2 || !floatEquals(sessions[0].PnL, 300) || !floatEquals(sessions[0].WinRate, 100) {
		t.Errorf("Unexpected NY aggregate: %+v", sessions[0])
	}
	if sessions[1].Trades != 2 || !floatEquals(sessions[1].PnL, -150) || !floatEquals(sessions[1].WinRate, 0) {
		t.Errorf("Unexpected LONDON aggregate: %+v", sessions[1])
	}
}

// TestCalculateSummaryStats verifies the headline numbers
func TestCalculateSummaryStats(t *testing.T) {
	stats := calculateSummaryStats(makeTrades(100, -50, 75))

	if stats.TotalTrades != 3 {
		t.Errorf("Expected 3 trades, got %d", stats.TotalTrades)
	}
	if !floatEquals(stats.TotalPnL, 125) {
		t.Errorf("Expected total P&L 125, got %f", stats.TotalPnL)
	}
	if !floatEquals(stats.BestTrade, 100) || !floatEquals(stats.WorstTrade, -50) {
		t.Errorf("Unexpected best/worst: %f/%f", stats.BestTrade, stats.WorstTrade)
	}
	if !floatEquals(stats.WinRate, 66.67) {
		t.Errorf("Expected win rate 66.67, got %f", stats.WinRate)
	}
}

// TestCalculateTrends verifies midpoint splitting and the inverted risk
// comparison. Input is newest-first, so the head half is the recent one.
func TestCalculateTrends(t *testing.T) {
	// Recent half winning with light risk, earlier half losing heavy
	trades := makeTrades(100, 100, -100, -100)
	trades[0].RiskPercentUsed = 1
	trades[1].RiskPercentUsed = 1
	trades[2].RiskPercentUsed = 3
	trades[3].RiskPercentUsed = 3

	trends := calculateTrends(trades)

	if trends.PnL != TrendImproving {
		t.Errorf("Expected P&L IMPROVING, got %s", trends.PnL)
	}
	if trends.WinRate != TrendImproving {
		t.Errorf("Expected win rate IMPROVING, got %s", trends.WinRate)
	}
	// Risk going down is an improvement
	if trends.Risk != TrendImproving {
		t.Errorf("Expected risk IMPROVING, got %s", trends.Risk)
	}
}

// TestCalculateTrendsTooFewTrades verifies the stable fallback
func TestCalculateTrendsTooFewTrades(t *testing.T) {
	trends := calculateTrends(makeTrades(100))

	if trends.PnL != TrendStable || trends.WinRate != TrendStable || trends.Risk != TrendStable {
		t.Errorf("Expected all STABLE for a single trade, got %+v", trends)
	}
}

// TestGenerateAlertsEmpty verifies no alerts without trades
func TestGenerateAlertsEmpty(t *testing.T) {
	alerts := generateAlerts(nil, StateNeutral)
	if alerts == nil || len(alerts) != 0 {
		t.Errorf("Expected empty non-nil alert slice, got %v", alerts)
	}
}

// TestGenerateAlertsThresholds checks the win rate, risk and state rules
func TestGenerateAlertsThresholds(t *testing.T) {
	// All winners with oversized risk, classified GREEDY
	trades := makeTrades(100, 100, 100)
	for i := range trades {
		trades[i].RiskPercentUsed = 4.0
	}

	alerts := generateAlerts(trades, StateGreedy)

	types := map[string]int{}
	for _, a := range alerts {
		types[a.Type]++
	}
	if types[AlertSuccess] != 1 {
		t.Errorf("Expected a SUCCESS win rate alert, got %+v", alerts)
	}
	if types[AlertError] != 1 {
		t.Errorf("Expected an ERROR risk alert, got %+v", alerts)
	}
	if types[AlertWarning] != 1 {
		t.Errorf("Expected a WARNING state alert, got %+v", alerts)
	}
}

// TestGenerateAlertsRecentForm verifies the recent-form comparison reads
// the head of the newest-first slice
func TestGenerateAlertsRecentForm(t *testing.T) {
	// Five recent winners followed by five earlier losers, overall 50%
	hotStreak := makeTrades(100, 100, 100, 100, 100, -100, -100, -100, -100, -100)
	coldStreak := makeTrades(-100, -100, -100, -100, -100, 100, 100, 100, 100, 100)

	countType := func(alerts []Alert, alertType string) int {
		n := 0
		for _, a := range alerts {
			if a.Type == alertType {
				n++
			}
		}
		return n
	}

	hot := generateAlerts(hotStreak, StateNeutral)
	if countType(hot, AlertInfo) != 1 {
		t.Errorf("Expected an INFO alert for a recent hot streak, got %+v", hot)
	}

	cold := generateAlerts(coldStreak, StateNeutral)
	if countType(cold, AlertWarning) != 1 {
		t.Errorf("Expected a WARNING alert for a recent cold streak, got %+v", cold)
	}
}

// TestBuildDashboardComposition verifies the composite payload wiring
func TestBuildDashboardComposition(t *testing.T) {
	periodTrades := makeTrades(100, -50, 75)
	recentTrades := makeTrades(100, 100, 100)

	dashboard := BuildDashboard(periodTrades, recentTrades, PeriodWeek)

	if dashboard.Period != PeriodWeek {
		t.Errorf("Expected period WEEK, got %s", dashboard.Period)
	}
	if dashboard.Summary.TotalTrades != 3 {
		t.Errorf("Expected summary over period trades, got %d", dashboard.Summary.TotalTrades)
	}
	// The state classifier runs on the recent set, not the period set
	if dashboard.State == nil || dashboard.State.State != StateConfident {
		t.Errorf("Expected CONFIDENT state from recent trades, got %+v", dashboard.State)
	}
	if dashboard.Insights == nil || dashboard.Insights.Period != PeriodWeek {
		t.Error("Expected insights for the same period")
	}
	if dashboard.GeneratedAt.IsZero() {
		t.Error("Expected GeneratedAt to be set")
	}
}

// TestBuildPeriodInsightsEmptyShape verifies the dashboard-facing empty
// payload differs from the generator's no-data insight
func TestBuildPeriodInsightsEmptyShape(t *testing.T) {
	result := BuildPeriodInsights(nil, PeriodMonth)

	if len(result.Insights) != 0 {
		t.Errorf("Expected empty insight list, got %+v", result.Insights)
	}
	if result.Summary != "No trading data available for analysis" {
		t.Errorf("Unexpected summary: %s", result.Summary)
	}

	// The underlying generator reports the same condition as one insight
	full := GenerateInsights(nil, PeriodMonth)
	if len(full.Insights) != 1 {
		t.Errorf("Expected generator to emit one no-data insight, got %d", len(full.Insights))
	}
}

// TestBuildPeriodInsightsDelegates verifies the populated path carries the
// generator output through
func TestBuildPeriodInsightsDelegates(t *testing.T) {
	trades := makeTrades(100, 100, 100, 100, 100)

	result := BuildPeriodInsights(trades, PeriodWeek)
	full := GenerateInsights(trades, PeriodWeek)

	if len(result.Insights) != len(full.Insights) {
		t.Errorf("Expected %d insights, got %d", len(full.Insights), len(result.Insights))
	}
	if result.Summary != "" {
		t.Errorf("Expected no summary on the populated path, got %s", result.Summary)
	}
}
