// Package analytics derives descriptive statistics and heuristic labels
// from a user's trade records: psychological state, session forecasts,
// performance insights, state history and dashboard aggregates.
//
// Every entry point is a pure function over an already-fetched slice of
// trades. The package never queries storage and never mutates its input.
package analytics

import "time"

// Psychological state labels
const (
	StateNeutral    = "NEUTRAL"
	StateConfident  = "CONFIDENT"
	StateFrustrated = "FRUSTRATED"
	StateGreedy     = "GREEDY"
	StateFearful    = "FEARFUL"
)

// Forecast and factor impact labels
const (
	ImpactPositive = "POSITIVE"
	ImpactNegative = "NEGATIVE"
	ImpactNeutral  = "NEUTRAL"
)

// Insight types (SWOT)
const (
	InsightStrength    = "STRENGTH"
	InsightWeakness    = "WEAKNESS"
	InsightOpportunity = "OPPORTUNITY"
	InsightThreat      = "THREAT"
)

// Insight impact levels
const (
	ImpactHigh   = "HIGH"
	ImpactMedium = "MEDIUM"
	ImpactLow    = "LOW"
)

// Alert types and priorities
const (
	AlertSuccess = "SUCCESS"
	AlertWarning = "WARNING"
	AlertInfo    = "INFO"
	AlertError   = "ERROR"

	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Trend directions
const (
	TrendImproving = "IMPROVING"
	TrendDeclining = "DECLINING"
	TrendStable    = "STABLE"
)

// PsychologicalState is the state classifier verdict for a set of trades.
type PsychologicalState struct {
	State            string    `json:"state"`
	Confidence       float64   `json:"confidence"`
	RiskTolerance    float64   `json:"risk_tolerance"`
	EmotionalBalance float64   `json:"emotional_balance"`
	LastUpdated      time.Time `json:"last_updated"`
	Recommendations  []string  `json:"recommendations"`
}

// ForecastFactor is one weighted input to a session forecast.
type ForecastFactor struct {
	Factor string  `json:"factor"`
	Impact string  `json:"impact"`
	Weight float64 `json:"weight"`
}

// SessionForecast is the directional forecast for one trading session.
type SessionForecast struct {
	Session         string           `json:"session"`
	Forecast        string           `json:"forecast"`
	Probability     float64          `json:"probability"`
	Factors         []ForecastFactor `json:"factors"`
	Recommendations []string         `json:"recommendations"`
}

// Insight is a single categorized performance observation.
type Insight struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Impact      string  `json:"impact"`
}

// BehaviorPattern describes a recurring behavioral tendency.
type BehaviorPattern struct {
	Pattern     string  `json:"pattern"`
	Frequency   float64 `json:"frequency"`
	Correlation float64 `json:"correlation"`
}

// PerformanceInsights is the insight generator output for a period.
type PerformanceInsights struct {
	Period          string            `json:"period"`
	Insights        []Insight         `json:"insights"`
	Patterns        []BehaviorPattern `json:"patterns"`
	Recommendations []string          `json:"recommendations"`
}

// StateContext links a recorded state change back to the originating trade.
type StateContext struct {
	TradeID         string  `json:"trade_id"`
	ProfitLoss      float64 `json:"profit_loss"`
	RiskPercentUsed float64 `json:"risk_percent_used"`
}

// StateChange is one recorded psychological state transition.
type StateChange struct {
	Timestamp  time.Time    `json:"timestamp"`
	State      string       `json:"state"`
	Confidence float64      `json:"confidence"`
	Trigger    string       `json:"trigger"`
	Context    StateContext `json:"context"`
}

// StateHistorySummary aggregates a state change sequence.
type StateHistorySummary struct {
	TotalChanges      int     `json:"total_changes"`
	MostCommonState   string  `json:"most_common_state"`
	AverageConfidence float64 `json:"average_confidence"`
	Volatility        float64 `json:"volatility"`
}

// StateHistory is the state history analyzer output.
type StateHistory struct {
	History []StateChange       `json:"history"`
	Summary StateHistorySummary `json:"summary"`
}

// SummaryStats holds the headline dashboard numbers for a period.
type SummaryStats struct {
	TotalTrades   int     `json:"total_trades"`
	WinRate       float64 `json:"win_rate"`
	TotalPnL      float64 `json:"total_pnl"`
	BestTrade     float64 `json:"best_trade"`
	WorstTrade    float64 `json:"worst_trade"`
	AvgRiskReward float64 `json:"avg_risk_reward"`
}

// DailyPnL is one day's aggregated profit and loss.
type DailyPnL struct {
	Date   string  `json:"date"`
	PnL    float64 `json:"pnl"`
	Trades int     `json:"trades"`
}

// SessionPerformance aggregates trades for one trading session.
type SessionPerformance struct {
	Session string  `json:"session"`
	Trades  int     `json:"trades"`
	PnL     float64 `json:"pnl"`
	WinRate float64 `json:"win_rate"`
}

// RiskMetrics holds risk-related dashboard numbers.
type RiskMetrics struct {
	AvgRiskPerTrade float64 `json:"avg_risk_per_trade"`
	MaxDrawdown     float64 `json:"max_drawdown"`
	SharpeRatio     float64 `json:"sharpe_ratio"`
}

// Trends compares the second half of a period against the first.
type Trends struct {
	PnL     string `json:"pnl"`
	WinRate string `json:"win_rate"`
	Risk    string `json:"risk"`
}

// Alert is a threshold-triggered dashboard notification.
type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// DashboardSummary is the lighter dashboard payload without the
// psychological state and insights sub-reports.
type DashboardSummary struct {
	Period      string               `json:"period"`
	Summary     SummaryStats         `json:"summary"`
	DailyPnL    []DailyPnL           `json:"daily_pnl"`
	Sessions    []SessionPerformance `json:"sessions"`
	RiskMetrics RiskMetrics          `json:"risk_metrics"`
	Trends      Trends               `json:"trends"`
	Alerts      []Alert              `json:"alerts"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// Dashboard is the full composite dashboard payload.
type Dashboard struct {
	Period      string               `json:"period"`
	Summary     SummaryStats         `json:"summary"`
	DailyPnL    []DailyPnL           `json:"daily_pnl"`
	Sessions    []SessionPerformance `json:"sessions"`
	RiskMetrics RiskMetrics          `json:"risk_metrics"`
	Trends      Trends               `json:"trends"`
	Alerts      []Alert              `json:"alerts"`
	State       *PsychologicalState  `json:"psychological_state"`
	Insights    *PerformanceInsights `json:"insights"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// PeriodInsights is the dashboard-facing insights payload. Unlike
// GenerateInsights it reports zero trades as an empty insight list with a
// summary string; both shapes are part of the API contract.
type PeriodInsights struct {
	Period          string            `json:"period"`
	Insights        []Insight         `json:"insights"`
	Patterns        []BehaviorPattern `json:"patterns,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Summary         string            `json:"summary,omitempty"`
}
