package analytics

import (
	"fmt"
	"sort"
	"time"

	"trading-mind-backend/internal/database"
)

// BuildDashboard composes the full dashboard for a period. periodTrades
// is the period-filtered set; recentTrades is the separately fetched
// most-recent-10 set the state classifier runs on.
func BuildDashboard(periodTrades, recentTrades []database.Trade, period string) *Dashboard {
	state := ClassifyState(recentTrades)
	return &Dashboard{
		Period:      period,
		Summary:     calculateSummaryStats(periodTrades),
		DailyPnL:    calculateDailyPnL(periodTrades),
		Sessions:    calculateSessionPerformance(periodTrades),
		RiskMetrics: calculateRiskMetrics(periodTrades),
		Trends:      calculateTrends(periodTrades),
		Alerts:      generateAlerts(periodTrades, state.State),
		State:       state,
		Insights:    GenerateInsights(periodTrades, period),
		GeneratedAt: time.Now(),
	}
}

// BuildDashboardSummary composes the lighter dashboard payload without
// the state and insights sub-reports.
func BuildDashboardSummary(periodTrades, recentTrades []database.Trade, period string) *DashboardSummary {
	state := ClassifyState(recentTrades)
	return &DashboardSummary{
		Period:      period,
		Summary:     calculateSummaryStats(periodTrades),
		DailyPnL:    calculateDailyPnL(periodTrades),
		Sessions:    calculateSessionPerformance(periodTrades),
		RiskMetrics: calculateRiskMetrics(periodTrades),
		Trends:      calculateTrends(periodTrades),
		Alerts:      generateAlerts(periodTrades, state.State),
		GeneratedAt: time.Now(),
	}
}

// BuildPeriodInsights is the dashboard-facing insights wrapper. With zero
// trades it returns an empty insight list plus a summary string, unlike
// GenerateInsights which returns a single OPPORTUNITY entry.
func BuildPeriodInsights(trades []database.Trade, period string) *PeriodInsights {
	if len(trades) == 0 {
		return &PeriodInsights{
			Period:   period,
			Insights: []Insight{},
			Summary:  "No trading data available for analysis",
		}
	}

	full := GenerateInsights(trades, period)
	return &PeriodInsights{
		Period:          full.Period,
		Insights:        full.Insights,
		Patterns:        full.Patterns,
		Recommendations: full.Recommendations,
	}
}

func calculateSummaryStats(trades []database.Trade) SummaryStats {
	stats := SummaryStats{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return stats
	}

	best := trades[0].ProfitLoss
	worst := trades[0].ProfitLoss
	for _, t := range trades {
		stats.TotalPnL += t.ProfitLoss
		if t.ProfitLoss > best {
			best = t.ProfitLoss
		}
		if t.ProfitLoss < worst {
			worst = t.ProfitLoss
		}
	}

	stats.WinRate = round2(WinRate(trades))
	stats.TotalPnL = round2(stats.TotalPnL)
	stats.BestTrade = round2(best)
	stats.WorstTrade = round2(worst)
	stats.AvgRiskReward = round2(AvgRiskReward(trades))
	return stats
}

// calculateDailyPnL groups trades by UTC calendar date of entry and sums
// P&L per date, ascending.
func calculateDailyPnL(trades []database.Trade) []DailyPnL {
	byDate := make(map[string]*DailyPnL)
	for _, t := range trades {
		date := t.EntryTime.UTC().Format("2006-01-02")
		day, ok := byDate[date]
		if !ok {
			day = &DailyPnL{Date: date}
			byDate[date] = day
		}
		day.PnL += t.ProfitLoss
		day.Trades++
	}

	result := make([]DailyPnL, 0, len(byDate))
	for _, day := range byDate {
		day.PnL = round2(day.PnL)
		result = append(result, *day)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

// calculateSessionPerformance aggregates per session in first-seen order.
func calculateSessionPerformance(trades []database.Trade) []SessionPerformance {
	bySession := make(map[string]*sessionAcc)
	var order []string
	for _, t := range trades {
		acc, ok := bySession[t.Session]
		if !ok {
			acc = &sessionAcc{}
			bySession[t.Session] = acc
			order = append(order, t.Session)
		}
		acc.trades++
		acc.pnl += t.ProfitLoss
		if t.ProfitLoss > 0 {
			acc.wins++
		}
	}

	result := make([]SessionPerformance, 0, len(order))
	for _, session := range order {
		acc := bySession[session]
		result = append(result, SessionPerformance{
			Session: session,
			Trades:  acc.trades,
			PnL:     round2(acc.pnl),
			WinRate: round2(float64(acc.wins) / float64(acc.trades) * 100),
		})
	}
	return result
}

type sessionAcc struct {
	trades int
	wins   int
	pnl    float64
}

func calculateRiskMetrics(trades []database.Trade) RiskMetrics {
	if len(trades) == 0 {
		return RiskMetrics{}
	}
	return RiskMetrics{
		AvgRiskPerTrade: round2(AvgRiskUsed(trades)),
		MaxDrawdown:     round2(MaxDrawdown(trades)),
		SharpeRatio:     round2(SharpeRatio(trades)),
	}
}

// calculateTrends splits the trades at the midpoint and compares the
// recent half against the earlier one. Trades arrive newest-first, so
// the head of the slice is the recent half. Fewer than 2 trades reports
// everything STABLE.
func calculateTrends(trades []database.Trade) Trends {
	if len(trades) < 2 {
		return Trends{PnL: TrendStable, WinRate: TrendStable, Risk: TrendStable}
	}

	mid := len(trades) / 2
	recent := trades[:mid]
	earlier := trades[mid:]

	return Trends{
		PnL:     compareTrend(sumPnL(recent), sumPnL(earlier), false),
		WinRate: compareTrend(WinRate(recent), WinRate(earlier), false),
		Risk:    compareTrend(AvgRiskUsed(recent), AvgRiskUsed(earlier), true),
	}
}

// compareTrend maps a recent-vs-earlier comparison to a trend direction.
// For inverted metrics (risk) a lower recent value is the improvement.
func compareTrend(recent, earlier float64, inverted bool) string {
	switch {
	case recent == earlier:
		return TrendStable
	case (recent > earlier) != inverted:
		return TrendImproving
	default:
		return TrendDeclining
	}
}

func sumPnL(trades []database.Trade) float64 {
	sum := 0.0
	for _, t := range trades {
		sum += t.ProfitLoss
	}
	return sum
}

// generateAlerts applies threshold rules over the period's trades and the
// current psychological state label.
func generateAlerts(trades []database.Trade, state string) []Alert {
	alerts := []Alert{}
	if len(trades) == 0 {
		return alerts
	}

	winRate := WinRate(trades)
	avgRisk := AvgRiskUsed(trades)

	if winRate >= 70 {
		alerts = append(alerts, Alert{
			Type:     AlertSuccess,
			Message:  fmt.Sprintf("Win rate at %.0f%% - trade selection is working", winRate),
			Priority: PriorityLow,
		})
	} else if winRate <= 30 {
		alerts = append(alerts, Alert{
			Type:     AlertWarning,
			Message:  fmt.Sprintf("Win rate at %.0f%% - review your entry criteria", winRate),
			Priority: PriorityHigh,
		})
	}

	if avgRisk > 3 {
		alerts = append(alerts, Alert{
			Type:     AlertError,
			Message:  fmt.Sprintf("Average risk per trade at %.1f%% exceeds the 3%% guideline", avgRisk),
			Priority: PriorityHigh,
		})
	}

	// Recent form vs overall. Trades arrive newest-first, so the five
	// most recent trades are the head of the slice.
	if len(trades) >= 5 {
		recent := WinRate(trades[:5])
		if recent < winRate-20 {
			alerts = append(alerts, Alert{
				Type:     AlertWarning,
				Message:  "Recent trades underperforming your overall win rate",
				Priority: PriorityMedium,
			})
		} else if recent > winRate+20 {
			alerts = append(alerts, Alert{
				Type:     AlertInfo,
				Message:  "Recent trades outperforming your overall win rate",
				Priority: PriorityLow,
			})
		}
	}

	switch state {
	case StateGreedy:
		alerts = append(alerts, Alert{
			Type:     AlertWarning,
			Message:  "Psychological state GREEDY - position sizes are creeping up",
			Priority: PriorityHigh,
		})
	case StateFearful:
		alerts = append(alerts, Alert{
			Type:     AlertInfo,
			Message:  "Psychological state FEARFUL - risk usage is unusually low",
			Priority: PriorityMedium,
		})
	case StateFrustrated:
		alerts = append(alerts, Alert{
			Type:     AlertWarning,
			Message:  "Psychological state FRUSTRATED - consider a short break",
			Priority: PriorityMedium,
		})
	}

	return alerts
}
