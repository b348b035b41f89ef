package analytics

import (
	"sort"

	"trading-mind-backend/internal/database"
)

// confidenceJumpThreshold records a history event when the classified
// confidence moves more than this many points without a state change.
const confidenceJumpThreshold = 15

// AnalyzeStateHistory replays trades chronologically through the state
// classifier on sliding windows of the last 5 trades and records the
// points where the psychological state shifted.
func AnalyzeStateHistory(trades []database.Trade, limit int) *StateHistory {
	if len(trades) == 0 {
		return &StateHistory{
			History: []StateChange{},
			Summary: StateHistorySummary{
				TotalChanges:      0,
				MostCommonState:   StateNeutral,
				AverageConfidence: 50,
				Volatility:        0,
			},
		}
	}

	sorted := make([]database.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EntryTime.Before(sorted[j].EntryTime)
	})

	history := []StateChange{}
	stateCounts := make(map[string]int)
	var stateOrder []string
	var confidences []float64

	prevState := ""
	prevConfidence := 0.0

	for i := 0; i < len(sorted) && len(history) < limit; i++ {
		start := i - 4
		if start < 0 {
			start = 0
		}
		window := sorted[start : i+1]

		verdict := ClassifyState(window)

		changed := i == 0 ||
			verdict.State != prevState ||
			abs(verdict.Confidence-prevConfidence) > confidenceJumpThreshold
		if !changed {
			continue
		}

		trade := sorted[i]
		history = append(history, StateChange{
			Timestamp:  trade.EntryTime,
			State:      verdict.State,
			Confidence: verdict.Confidence,
			Trigger:    stateTrigger(trade),
			Context: StateContext{
				TradeID:         trade.ID,
				ProfitLoss:      trade.ProfitLoss,
				RiskPercentUsed: trade.RiskPercentUsed,
			},
		})

		if _, seen := stateCounts[verdict.State]; !seen {
			stateOrder = append(stateOrder, verdict.State)
		}
		stateCounts[verdict.State]++
		confidences = append(confidences, verdict.Confidence)

		prevState = verdict.State
		prevConfidence = verdict.Confidence
	}

	if len(history) > limit {
		history = history[:limit]
	}

	return &StateHistory{
		History: history,
		Summary: summarizeHistory(history, stateCounts, stateOrder, confidences),
	}
}

// stateTrigger labels what a trade did, in precedence order.
func stateTrigger(trade database.Trade) string {
	switch {
	case trade.ProfitLoss > 0:
		return "Profitable trade"
	case trade.ProfitLoss < 0:
		return "Losing trade"
	case trade.ExitedEarly:
		return "Early exit"
	case trade.StopLossHit:
		return "Stop loss hit"
	default:
		return "Trade execution"
	}
}

func summarizeHistory(history []StateChange, counts map[string]int, order []string, confidences []float64) StateHistorySummary {
	mostCommon := StateNeutral
	best := 0
	for _, state := range order {
		if counts[state] > best {
			mostCommon = state
			best = counts[state]
		}
	}

	avgConfidence := 50.0
	if len(confidences) > 0 {
		sum := 0.0
		for _, c := range confidences {
			sum += c
		}
		avgConfidence = roundScore(sum / float64(len(confidences)))
	}

	return StateHistorySummary{
		TotalChanges:      len(history),
		MostCommonState:   mostCommon,
		AverageConfidence: avgConfidence,
		Volatility:        round2(StdDev(confidences) / 100),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
