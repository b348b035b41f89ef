package analytics

import (
	"fmt"

	"trading-mind-backend/internal/database"
)

// GenerateInsights maps trades restricted to a period to categorized
// insights, behavioral patterns and recommendations.
func GenerateInsights(trades []database.Trade, period string) *PerformanceInsights {
	if len(trades) == 0 {
		return &PerformanceInsights{
			Period: period,
			Insights: []Insight{
				{
					Type:        InsightOpportunity,
					Description: "No trading data available for analysis",
					Confidence:  100,
					Impact:      ImpactLow,
				},
			},
			Patterns:        []BehaviorPattern{},
			Recommendations: []string{"Start trading to generate performance insights"},
		}
	}

	winRate := WinRate(trades)
	avgRisk := AvgRiskUsed(trades)
	avgRiskReward := AvgRiskReward(trades)

	insights := []Insight{}
	patterns := []BehaviorPattern{}
	recommendations := []string{}

	// Win-rate insight
	if winRate >= 70 {
		insights = append(insights, Insight{
			Type:        InsightStrength,
			Description: "High win rate indicates strong trade selection",
			Confidence:  roundScore(winRate),
			Impact:      ImpactHigh,
		})
	} else if winRate <= 30 {
		insights = append(insights, Insight{
			Type:        InsightWeakness,
			Description: "Low win rate suggests entry criteria need refinement",
			Confidence:  roundScore(100 - winRate),
			Impact:      ImpactHigh,
		})
		recommendations = append(recommendations, "Review entry criteria and market analysis")
	}

	// Risk insight
	if avgRisk <= 2 {
		insights = append(insights, Insight{
			Type:        InsightStrength,
			Description: "Disciplined risk management with conservative position sizing",
			Confidence:  85,
			Impact:      ImpactHigh,
		})
	} else if avgRisk > 3 {
		insights = append(insights, Insight{
			Type:        InsightWeakness,
			Description: "Risk per trade exceeds recommended levels",
			Confidence:  80,
			Impact:      ImpactHigh,
		})
		recommendations = append(recommendations, "Reduce risk per trade to protect capital")
	}

	// Risk-reward insight
	if avgRiskReward >= 1.5 {
		insights = append(insights, Insight{
			Type:        InsightStrength,
			Description: "Favorable risk-reward ratios on executed trades",
			Confidence:  75,
			Impact:      ImpactMedium,
		})
	} else if avgRiskReward < 1 {
		insights = append(insights, Insight{
			Type:        InsightWeakness,
			Description: "Risk-reward ratios below breakeven threshold",
			Confidence:  70,
			Impact:      ImpactMedium,
		})
		recommendations = append(recommendations, "Focus on trades with better risk-reward ratios")
	}

	// Behavioral patterns
	if rate := earlyExitRate(trades); rate > 0.3 {
		patterns = append(patterns, BehaviorPattern{
			Pattern:     "Early exit on profitable trades",
			Frequency:   roundScore(rate * 100),
			Correlation: -0.3,
		})
		recommendations = append(recommendations, "Practice holding winners longer")
	}
	if rate := stopLossRate(trades); rate > 0.4 {
		patterns = append(patterns, BehaviorPattern{
			Pattern:     "Frequent stop loss hits",
			Frequency:   roundScore(rate * 100),
			Correlation: -0.5,
		})
		recommendations = append(recommendations, "Improve entry timing and market analysis")
	}

	// Session dominance: first-seen session wins ties
	if best, count := dominantSession(trades); count > 0 &&
		float64(count)/float64(len(trades)) > 0.5 {
		insights = append(insights, Insight{
			Type:        InsightOpportunity,
			Description: fmt.Sprintf("Strong performance in %s session", best),
			Confidence:  70,
			Impact:      ImpactMedium,
		})
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Continue current trading approach",
			"Monitor performance metrics regularly",
		)
	}

	return &PerformanceInsights{
		Period:          period,
		Insights:        insights,
		Patterns:        patterns,
		Recommendations: recommendations,
	}
}

// dominantSession returns the session with the highest trade count,
// preferring the session seen first when counts tie.
func dominantSession(trades []database.Trade) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, t := range trades {
		if _, seen := counts[t.Session]; !seen {
			order = append(order, t.Session)
		}
		counts[t.Session]++
	}

	best := ""
	bestCount := 0
	for _, session := range order {
		if counts[session] > bestCount {
			best = session
			bestCount = counts[session]
		}
	}
	return best, bestCount
}
