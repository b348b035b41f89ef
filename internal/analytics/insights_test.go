package analytics

import (
	"testing"

	"trading-mind-backend/internal/database"
)

// TestGenerateInsightsEmpty tests the no-data verdict
func TestGenerateInsightsEmpty(t *testing.T) {
	insights := GenerateInsights(nil, PeriodMonth)

	if insights.Period != PeriodMonth {
		t.Errorf("Expected period MONTH, got %s", insights.Period)
	}
	if len(insights.Insights) != 1 {
		t.Fatalf("Expected 1 insight, got %d", len(insights.Insights))
	}
	in := insights.Insights[0]
	if in.Type != InsightOpportunity || in.Confidence != 100 || in.Impact != ImpactLow {
		t.Errorf("Unexpected no-data insight: %+v", in)
	}
	if in.Description != "No trading data available for analysis" {
		t.Errorf("Unexpected description: %s", in.Description)
	}
	if len(insights.Patterns) != 0 {
		t.Errorf("Expected no patterns, got %v", insights.Patterns)
	}
}

// TestGenerateInsightsStrengths tests an all-around strong record
func TestGenerateInsightsStrengths(t *testing.T) {
	// All winners, risk 1.5, RR 1.5, all in LONDON
	trades := makeTrades(100, 100, 100, 100, 100)

	insights := GenerateInsights(trades, PeriodWeek)

	// win rate STRENGTH, risk STRENGTH, RR STRENGTH, session OPPORTUNITY
	if len(insights.Insights) != 4 {
		t.Fatalf("Expected 4 insights, got %d: %+v", len(insights.Insights), insights.Insights)
	}

	winRateInsight := insights.Insights[0]
	if winRateInsight.Type != InsightStrength || winRateInsight.Confidence != 100 {
		t.Errorf("Unexpected win rate insight: %+v", winRateInsight)
	}

	sessionInsight := insights.Insights[3]
	if sessionInsight.Type != InsightOpportunity ||
		sessionInsight.Description != "Strong performance in LONDON session" {
		t.Errorf("Unexpected session insight: %+v", sessionInsight)
	}

	// No weaknesses, so the default recommendation pair applies
	if len(insights.Recommendations) != 2 ||
		insights.Recommendations[0] != "Continue current trading approach" {
		t.Errorf("Unexpected recommendations: %v", insights.Recommendations)
	}
}

// TestGenerateInsightsWeaknesses tests the weakness thresholds and their
// recommendations
func TestGenerateInsightsWeaknesses(t *testing.T) {
	// 1 of 5 winners, heavy risk, poor RR
	trades := makeTrades(100, -50, -50, -50, -50)
	for i := range trades {
		trades[i].RiskPercentUsed = 4.0
		trades[i].RiskRewardAchieved = 0.5
	}

	insights := GenerateInsights(trades, PeriodMonth)

	types := map[string]int{}
	for _, in := range insights.Insights {
		types[in.Type]++
	}
	if types[InsightWeakness] != 3 {
		t.Errorf("Expected 3 weaknesses, got %+v", insights.Insights)
	}

	// winRate 20: confidence = 100-20 = 80
	if insights.Insights[0].Confidence != 80 {
		t.Errorf("Expected win rate confidence 80, got %f", insights.Insights[0].Confidence)
	}

	wantRecs := []string{
		"Review entry criteria and market analysis",
		"Reduce risk per trade to protect capital",
		"Focus on trades with better risk-reward ratios",
	}
	if len(insights.Recommendations) != len(wantRecs) {
		t.Fatalf("Expected %d recommendations, got %v", len(wantRecs), insights.Recommendations)
	}
	for i, want := range wantRecs {
		if insights.Recommendations[i] != want {
			t.Errorf("Recommendation %d: expected %q, got %q", i, want, insights.Recommendations[i])
		}
	}
}

// TestGenerateInsightsPatterns tests the behavioral pattern detection
func TestGenerateInsightsPatterns(t *testing.T) {
	trades := makeTrades(100, -50, 100, -50, 100, -50, 100, -50, 100, -50)
	// 4 of 10 early exits, 5 of 10 stop loss hits
	for i := 0; i < 4; i++ {
		trades[i].ExitedEarly = true
	}
	for i := 0; i < 5; i++ {
		trades[i].StopLossHit = true
	}

	insights := GenerateInsights(trades, PeriodMonth)

	if len(insights.Patterns) != 2 {
		t.Fatalf("Expected 2 patterns, got %+v", insights.Patterns)
	}
	early := insights.Patterns[0]
	if early.Pattern != "Early exit on profitable trades" || early.Frequency != 40 || early.Correlation != -0.3 {
		t.Errorf("Unexpected early exit pattern: %+v", early)
	}
	stops := insights.Patterns[1]
	if stops.Pattern != "Frequent stop loss hits" || stops.Frequency != 50 || stops.Correlation != -0.5 {
		t.Errorf("Unexpected stop loss pattern: %+v", stops)
	}
}

// TestDominantSessionTieBreak verifies the first-seen session wins ties
func TestDominantSessionTieBreak(t *testing.T) {
	trades := makeTrades(10, 10, 10, 10)
	trades[0].Session = database.SessionNY
	trades[1].Session = database.SessionLondon
	trades[2].Session = database.SessionNY
	trades[3].Session = database.SessionLondon

	best, count := dominantSession(trades)

	if best != database.SessionNY || count != 2 {
		t.Errorf("Expected first-seen NY with count 2, got %s/%d", best, count)
	}
}

// TestGenerateInsightsNoSessionDominance verifies an exact half split does
// not produce a session insight
func TestGenerateInsightsNoSessionDominance(t *testing.T) {
	trades := makeTrades(100, 100, 100, 100)
	trades[0].Session = database.SessionNY
	trades[1].Session = database.SessionNY
	trades[2].Session = database.SessionAsia
	trades[3].Session = database.SessionAsia

	insights := GenerateInsights(trades, PeriodMonth)

	for _, in := range insights.Insights {
		if in.Type == InsightOpportunity {
			t.Errorf("Expected no session dominance insight, got %+v", in)
		}
	}
}
