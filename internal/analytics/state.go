package analytics

import (
	"math"
	"time"

	"trading-mind-backend/internal/database"
)

// Recommendation strings emitted by the state classifier.
const (
	recBuildProfile    = "Start trading to build psychological profile"
	recReduceRisk      = "Reduce risk per trade"
	recIncreaseSize    = "Consider increasing position size gradually"
	recHoldLonger      = "Work on holding profitable trades longer"
	recReviewEntries   = "Review entry strategies and market analysis"
	recTradeManagement = "Improve trade management and target setting"
	recContinue        = "Continue current trading approach"
)

// ClassifyState maps a set of trades (typically the most recent 10) to a
// psychological state verdict.
//
// The rules run in a fixed order and later rules overwrite the state set
// by earlier ones: a 100% win rate combined with oversized risk still
// classifies as GREEDY, not CONFIDENT. That ordering is part of the
// contract.
func ClassifyState(trades []database.Trade) *PsychologicalState {
	if len(trades) == 0 {
		return &PsychologicalState{
			State:            StateNeutral,
			Confidence:       50,
			RiskTolerance:    50,
			EmotionalBalance: 50,
			LastUpdated:      time.Now(),
			Recommendations:  []string{recBuildProfile},
		}
	}

	winRate := WinRate(trades)
	avgRiskUsed := AvgRiskUsed(trades)
	avgTargetAchieved := AvgTargetAchieved(trades)

	result := &PsychologicalState{
		State:            StateNeutral,
		Confidence:       50,
		RiskTolerance:    50,
		EmotionalBalance: 50,
		Recommendations:  []string{},
	}

	// Win-rate rule
	if winRate >= 70 {
		result.State = StateConfident
		result.Confidence = math.Min(95, 50+(winRate-50)*0.9)
		result.RiskTolerance = math.Min(80, 50+(winRate-50)*0.6)
	} else if winRate <= 30 {
		result.State = StateFrustrated
		result.Confidence = math.Max(20, 50-(50-winRate)*0.6)
		result.RiskTolerance = math.Max(20, 50-(50-winRate)*0.6)
	}

	// Risk-usage rule, may overwrite the win-rate verdict
	if avgRiskUsed > 3 {
		result.State = StateGreedy
		result.RiskTolerance = math.Min(90, result.RiskTolerance+20)
		result.Recommendations = append(result.Recommendations, recReduceRisk)
	} else if avgRiskUsed < 1 {
		result.State = StateFearful
		result.RiskTolerance = math.Max(10, result.RiskTolerance-20)
		result.Recommendations = append(result.Recommendations, recIncreaseSize)
	}

	// Discipline rules affect emotional balance only
	if earlyExitRate(trades) > 0.3 {
		result.EmotionalBalance = math.Max(30, result.EmotionalBalance-20)
		result.Recommendations = append(result.Recommendations, recHoldLonger)
	}
	if stopLossRate(trades) > 0.4 {
		result.EmotionalBalance = math.Max(30, result.EmotionalBalance-15)
		result.Recommendations = append(result.Recommendations, recReviewEntries)
	}

	if avgTargetAchieved < 50 {
		result.Recommendations = append(result.Recommendations, recTradeManagement)
	}

	if len(result.Recommendations) == 0 {
		result.Recommendations = append(result.Recommendations, recContinue)
	}

	result.Confidence = roundScore(result.Confidence)
	result.RiskTolerance = roundScore(result.RiskTolerance)
	result.EmotionalBalance = roundScore(result.EmotionalBalance)
	result.LastUpdated = time.Now()

	return result
}

// earlyExitRate returns the fraction of trades exited before target.
func earlyExitRate(trades []database.Trade) float64 {
	n := 0
	for _, t := range trades {
		if t.ExitedEarly {
			n++
		}
	}
	return float64(n) / float64(len(trades))
}

// stopLossRate returns the fraction of trades that hit their stop loss.
func stopLossRate(trades []database.Trade) float64 {
	n := 0
	for _, t := range trades {
		if t.StopLossHit {
			n++
		}
	}
	return float64(n) / float64(len(trades))
}
