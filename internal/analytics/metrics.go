package analytics

import (
	"math"

	"trading-mind-backend/internal/database"
)

// WinRate returns the percentage of trades with a positive profit/loss.
// An empty slice yields 0.
func WinRate(trades []database.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.ProfitLoss > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// AvgProfitLoss returns the arithmetic mean profit/loss.
// Callers must guard against an empty slice.
func AvgProfitLoss(trades []database.Trade) float64 {
	sum := 0.0
	for _, t := range trades {
		sum += t.ProfitLoss
	}
	return sum / float64(len(trades))
}

// AvgRiskUsed returns the mean risk percent used per trade.
// Callers must guard against an empty slice.
func AvgRiskUsed(trades []database.Trade) float64 {
	sum := 0.0
	for _, t := range trades {
		sum += t.RiskPercentUsed
	}
	return sum / float64(len(trades))
}

// AvgRiskReward returns the mean achieved risk/reward ratio.
// Callers must guard against an empty slice.
func AvgRiskReward(trades []database.Trade) float64 {
	sum := 0.0
	for _, t := range trades {
		sum += t.RiskRewardAchieved
	}
	return sum / float64(len(trades))
}

// AvgTargetAchieved returns the mean target percent achieved.
// Callers must guard against an empty slice.
func AvgTargetAchieved(trades []database.Trade) float64 {
	sum := 0.0
	for _, t := range trades {
		sum += t.TargetPercentAchieved
	}
	return sum / float64(len(trades))
}

// StdDev returns the population standard deviation (divide by N, not N-1).
// An empty slice yields 0.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}

// MaxDrawdown returns the largest peak-to-trough decline of the cumulative
// P&L, walking the trades in the order given (no re-sorting).
func MaxDrawdown(trades []database.Trade) float64 {
	running := 0.0
	peak := 0.0
	maxDD := 0.0
	for _, t := range trades {
		running += t.ProfitLoss
		if running > peak {
			peak = running
		}
		if dd := peak - running; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// SharpeRatio returns mean P&L divided by its population standard
// deviation, with no risk-free rate or annualization. Zero deviation
// yields 0.
func SharpeRatio(trades []database.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	pnls := make([]float64, len(trades))
	for i, t := range trades {
		pnls[i] = t.ProfitLoss
	}
	sd := StdDev(pnls)
	if sd == 0 {
		return 0
	}
	return AvgProfitLoss(trades) / sd
}

// round2 rounds to 2 decimal places, the precision used for P&L and ratios.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundScore rounds a 0-100 score to the nearest integer.
func roundScore(v float64) float64 {
	return math.Round(v)
}
