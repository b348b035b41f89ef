package database

import (
	"time"
)

// Trading session constants
const (
	SessionLondon = "LONDON"
	SessionNY     = "NY"
	SessionAsia   = "ASIA"
)

// ValidSession reports whether s is one of the known trading sessions.
func ValidSession(s string) bool {
	switch s {
	case SessionLondon, SessionNY, SessionAsia:
		return true
	}
	return false
}

// Trade represents a single completed trade record owned by a user.
type Trade struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	EntryTime             time.Time `json:"entry_time"`
	ExitTime              time.Time `json:"exit_time"`
	RiskPercentUsed       float64   `json:"risk_percent_used"`
	ProfitLoss            float64   `json:"profit_loss"`
	RiskRewardAchieved    float64   `json:"risk_reward_achieved"`
	Session               string    `json:"session"`
	StopLossHit           bool      `json:"stop_loss_hit"`
	ExitedEarly           bool      `json:"exited_early"`
	TargetPercentAchieved float64   `json:"target_percent_achieved"`
	Notes                 *string   `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TradingPlan is the per-user trading plan (one row per user).
type TradingPlan struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	MaxRiskPerTrade   float64   `json:"max_risk_per_trade"`
	MaxDailyRisk      float64   `json:"max_daily_risk"`
	MaxOpenTrades     int       `json:"max_open_trades"`
	PreferredSessions []string  `json:"preferred_sessions"`
	Goals             *string   `json:"goals,omitempty"`
	Rules             *string   `json:"rules,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// User represents an account in the database.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Session represents a refresh-token session for a user.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	Revoked      bool      `json:"revoked"`
	CreatedAt    time.Time `json:"created_at"`
}

// TradeFilter narrows trade queries. Zero values mean "no constraint".
type TradeFilter struct {
	Session string
	From    time.Time
	To      time.Time
	Limit   int
	Offset  int
}
