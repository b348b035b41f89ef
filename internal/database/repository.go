package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Repository provides data access methods
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// HealthCheck performs a database health check
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.db.Pool.Ping(ctx)
}

// ============================================================================
// TRADES
// ============================================================================

const tradeColumns = `id, user_id, entry_time, exit_time, risk_percent_used, profit_loss,
	       risk_reward_achieved, session, stop_loss_hit, exited_early,
	       target_percent_achieved, notes, created_at, updated_at`

// CreateTrade inserts a new trade for a user
func (r *Repository) CreateTrade(ctx context.Context, trade *Trade) error {
	query := `
		INSERT INTO trades (user_id, entry_time, exit_time, risk_percent_used, profit_loss,
		                    risk_reward_achieved, session, stop_loss_hit, exited_early,
		                    target_percent_achieved, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	return r.db.Pool.QueryRow(
		ctx, query,
		trade.UserID, trade.EntryTime, trade.ExitTime, trade.RiskPercentUsed, trade.ProfitLoss,
		trade.RiskRewardAchieved, trade.Session, trade.StopLossHit, trade.ExitedEarly,
		trade.TargetPercentAchieved, trade.Notes,
	).Scan(&trade.ID, &trade.CreatedAt, &trade.UpdatedAt)
}

// GetTradeByID retrieves a trade by ID, scoped to its owner
func (r *Repository) GetTradeByID(ctx context.Context, userID, tradeID string) (*Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id = $1 AND user_id = $2`

	trade := &Trade{}
	err := r.db.Pool.QueryRow(ctx, query, tradeID, userID).Scan(
		&trade.ID, &trade.UserID, &trade.EntryTime, &trade.ExitTime,
		&trade.RiskPercentUsed, &trade.ProfitLoss, &trade.RiskRewardAchieved,
		&trade.Session, &trade.StopLossHit, &trade.ExitedEarly,
		&trade.TargetPercentAchieved, &trade.Notes, &trade.CreatedAt, &trade.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return trade, nil
}

// UpdateTrade updates an existing trade, scoped to its owner
func (r *Repository) UpdateTrade(ctx context.Context, trade *Trade) error {
	query := `
		UPDATE trades
		SET entry_time = $3, exit_time = $4, risk_percent_used = $5, profit_loss = $6,
		    risk_reward_achieved = $7, session = $8, stop_loss_hit = $9, exited_early = $10,
		    target_percent_achieved = $11, notes = $12
		WHERE id = $1 AND user_id = $2
	`
	tag, err := r.db.Pool.Exec(
		ctx, query,
		trade.ID, trade.UserID, trade.EntryTime, trade.ExitTime, trade.RiskPercentUsed,
		trade.ProfitLoss, trade.RiskRewardAchieved, trade.Session, trade.StopLossHit,
		trade.ExitedEarly, trade.TargetPercentAchieved, trade.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrade removes a trade, scoped to its owner
func (r *Repository) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM trades WHERE id = $1 AND user_id = $2`, tradeID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTradesForUser retrieves a user's trades, newest entry first, applying
// the optional filter constraints.
func (r *Repository) GetTradesForUser(ctx context.Context, userID string, filter TradeFilter) ([]Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Session != "" {
		args = append(args, filter.Session)
		query += fmt.Sprintf(" AND session = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND entry_time >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND entry_time <= $%d", len(args))
	}

	query += " ORDER BY entry_time DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryTrades(ctx, query, args...)
}

// GetRecentTrades retrieves the user's most recent trades by entry time.
func (r *Repository) GetRecentTrades(ctx context.Context, userID string, limit int) ([]Trade, error) {
	return r.GetTradesForUser(ctx, userID, TradeFilter{Limit: limit})
}

// queryTrades is a helper to execute trade list queries
func (r *Repository) queryTrades(ctx context.Context, query string, args ...interface{}) ([]Trade, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := []Trade{}
	for rows.Next() {
		var trade Trade
		err := rows.Scan(
			&trade.ID, &trade.UserID, &trade.EntryTime, &trade.ExitTime,
			&trade.RiskPercentUsed, &trade.ProfitLoss, &trade.RiskRewardAchieved,
			&trade.Session, &trade.StopLossHit, &trade.ExitedEarly,
			&trade.TargetPercentAchieved, &trade.Notes, &trade.CreatedAt, &trade.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

// ============================================================================
// TRADING PLANS
// ============================================================================

// GetTradingPlan retrieves the user's trading plan
func (r *Repository) GetTradingPlan(ctx context.Context, userID string) (*TradingPlan, error) {
	query := `
		SELECT id, user_id, max_risk_per_trade, max_daily_risk, max_open_trades,
		       preferred_sessions, goals, rules, created_at, updated_at
		FROM trading_plans
		WHERE user_id = $1
	`
	plan := &TradingPlan{}
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&plan.ID, &plan.UserID, &plan.MaxRiskPerTrade, &plan.MaxDailyRisk,
		&plan.MaxOpenTrades, &plan.PreferredSessions, &plan.Goals, &plan.Rules,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

// UpsertTradingPlan creates or replaces the user's trading plan
func (r *Repository) UpsertTradingPlan(ctx context.Context, plan *TradingPlan) error {
	query := `
		INSERT INTO trading_plans (user_id, max_risk_per_trade, max_daily_risk, max_open_trades,
		                           preferred_sessions, goals, rules)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			max_risk_per_trade = EXCLUDED.max_risk_per_trade,
			max_daily_risk = EXCLUDED.max_daily_risk,
			max_open_trades = EXCLUDED.max_open_trades,
			preferred_sessions = EXCLUDED.preferred_sessions,
			goals = EXCLUDED.goals,
			rules = EXCLUDED.rules
		RETURNING id, created_at, updated_at
	`
	return r.db.Pool.QueryRow(
		ctx, query,
		plan.UserID, plan.MaxRiskPerTrade, plan.MaxDailyRisk, plan.MaxOpenTrades,
		plan.PreferredSessions, plan.Goals, plan.Rules,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

// DeleteTradingPlan removes the user's trading plan
func (r *Repository) DeleteTradingPlan(ctx context.Context, userID string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM trading_plans WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
