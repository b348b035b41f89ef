package analytics

import (
	"strings"

	"trading-mind-backend/internal/database"
)

// ForecastSession maps trades pre-filtered to one session (typically the
// most recent 20) to a directional forecast with weighted factors.
func ForecastSession(trades []database.Trade, session string) *SessionForecast {
	session = strings.ToUpper(session)

	if len(trades) == 0 {
		return &SessionForecast{
			Session:     session,
			Forecast:    ImpactNeutral,
			Probability: 50,
			Factors: []ForecastFactor{
				{Factor: "No historical data", Impact: ImpactNeutral, Weight: 1.0},
			},
			Recommendations: []string{"Start trading this session to build forecast data"},
		}
	}

	winRate := WinRate(trades)
	avgProfit := AvgProfitLoss(trades)
	avgRisk := AvgRiskUsed(trades)

	probability := 50.0
	factors := []ForecastFactor{}

	if winRate >= 60 {
		factors = append(factors, ForecastFactor{Factor: "Historical win rate", Impact: ImpactPositive, Weight: 0.4})
		probability += 20
	} else if winRate <= 40 {
		factors = append(factors, ForecastFactor{Factor: "Historical win rate", Impact: ImpactNegative, Weight: 0.4})
		probability -= 20
	}

	if avgProfit > 0 {
		factors = append(factors, ForecastFactor{Factor: "Average profitability", Impact: ImpactPositive, Weight: 0.3})
		probability += 15
	} else {
		factors = append(factors, ForecastFactor{Factor: "Average profitability", Impact: ImpactNegative, Weight: 0.3})
		probability -= 15
	}

	if avgRisk <= 2 {
		factors = append(factors, ForecastFactor{Factor: "Risk management", Impact: ImpactPositive, Weight: 0.3})
		probability += 10
	} else {
		factors = append(factors, ForecastFactor{Factor: "Risk management", Impact: ImpactNegative, Weight: 0.3})
		probability -= 10
	}

	forecast := ImpactNeutral
	if probability >= 65 {
		forecast = ImpactPositive
	} else if probability <= 35 {
		forecast = ImpactNegative
	}

	var recommendations []string
	switch forecast {
	case ImpactPositive:
		recommendations = []string{
			"Conditions favor your usual approach in this session",
			"Maintain current risk management discipline",
		}
	case ImpactNegative:
		recommendations = []string{
			"Consider reducing position sizes in this session",
			"Review your recent trades for recurring mistakes",
		}
	default:
		recommendations = []string{
			"Trade selectively until a clearer edge develops",
			"Keep risk per trade conservative in this session",
		}
	}

	if probability < 0 {
		probability = 0
	} else if probability > 100 {
		probability = 100
	}

	return &SessionForecast{
		Session:         session,
		Forecast:        forecast,
		Probability:     probability,
		Factors:         factors,
		Recommendations: recommendations,
	}
}
