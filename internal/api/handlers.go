package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"trading-mind-backend/internal/database"
	"trading-mind-backend/internal/events"

	"github.com/gin-gonic/gin"
)

const (
	defaultTradeLimit = 50
	maxTradeLimit     = 500
)

// TradeRequest is the payload for creating or updating a trade
type TradeRequest struct {
	EntryTime             time.Time `json:"entry_time" binding:"required"`
	ExitTime              time.Time `json:"exit_time" binding:"required"`
	RiskPercentUsed       float64   `json:"risk_percent_used"`
	ProfitLoss            float64   `json:"profit_loss"`
	RiskRewardAchieved    float64   `json:"risk_reward_achieved"`
	Session               string    `json:"session" binding:"required"`
	StopLossHit           bool      `json:"stop_loss_hit"`
	ExitedEarly           bool      `json:"exited_early"`
	TargetPercentAchieved float64   `json:"target_percent_achieved"`
	Notes                 *string   `json:"notes"`
}

func (r *TradeRequest) validate() error {
	r.Session = strings.ToUpper(r.Session)
	if !database.ValidSession(r.Session) {
		return errors.New("session must be one of LONDON, NY, ASIA")
	}
	if r.ExitTime.Before(r.EntryTime) {
		return errors.New("exit_time must not be before entry_time")
	}
	if r.RiskPercentUsed < 0 {
		return errors.New("risk_percent_used must not be negative")
	}
	return nil
}

// handleCreateTrade records a new trade for the authenticated user
func (s *Server) handleCreateTrade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := s.getUserID(c)
	trade := &database.Trade{
		UserID:                userID,
		EntryTime:             req.EntryTime,
		ExitTime:              req.ExitTime,
		RiskPercentUsed:       req.RiskPercentUsed,
		ProfitLoss:            req.ProfitLoss,
		RiskRewardAchieved:    req.RiskRewardAchieved,
		Session:               req.Session,
		StopLossHit:           req.StopLossHit,
		ExitedEarly:           req.ExitedEarly,
		TargetPercentAchieved: req.TargetPercentAchieved,
		Notes:                 req.Notes,
	}

	if err := s.repo.CreateTrade(c.Request.Context(), trade); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create trade")
		errorResponse(c, http.StatusInternalServerError, "Failed to create trade")
		return
	}

	s.invalidateAnalytics(c, userID)
	s.eventBus.PublishTradeEvent(events.EventTradeCreated, userID, trade.ID, trade.ProfitLoss, trade.Session)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": trade})
}

// handleListTrades returns the user's trades, newest first, with optional
// session/date filters and pagination
func (s *Server) handleListTrades(c *gin.Context) {
	userID := s.getUserID(c)

	filter := database.TradeFilter{Limit: defaultTradeLimit}

	if session := c.Query("session"); session != "" {
		session = strings.ToUpper(session)
		if !database.ValidSession(session) {
			errorResponse(c, http.StatusBadRequest, "Invalid session filter")
			return
		}
		filter.Session = session
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		filter.To = t
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			errorResponse(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		if n > maxTradeLimit {
			n = maxTradeLimit
		}
		filter.Limit = n
	}
	if offset := c.Query("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			errorResponse(c, http.StatusBadRequest, "Invalid offset")
			return
		}
		filter.Offset = n
	}

	trades, err := s.repo.GetTradesForUser(c.Request.Context(), userID, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list trades")
		errorResponse(c, http.StatusInternalServerError, "Failed to list trades")
		return
	}

	successResponse(c, gin.H{
		"trades": trades,
		"count":  len(trades),
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// handleGetTrade returns a single trade owned by the user
func (s *Server) handleGetTrade(c *gin.Context) {
	userID := s.getUserID(c)
	tradeID, ok := tradeIDParam(c)
	if !ok {
		return
	}

	trade, err := s.repo.GetTradeByID(c.Request.Context(), userID, tradeID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "Trade not found")
			return
		}
		s.logger.Error().Err(err).Str("trade_id", tradeID).Msg("Failed to get trade")
		errorResponse(c, http.StatusInternalServerError, "Failed to get trade")
		return
	}

	successResponse(c, trade)
}

// handleUpdateTrade replaces an existing trade's fields
func (s *Server) handleUpdateTrade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := s.getUserID(c)
	tradeID, ok := tradeIDParam(c)
	if !ok {
		return
	}
	trade := &database.Trade{
		ID:                    tradeID,
		UserID:                userID,
		EntryTime:             req.EntryTime,
		ExitTime:              req.ExitTime,
		RiskPercentUsed:       req.RiskPercentUsed,
		ProfitLoss:            req.ProfitLoss,
		RiskRewardAchieved:    req.RiskRewardAchieved,
		Session:               req.Session,
		StopLossHit:           req.StopLossHit,
		ExitedEarly:           req.ExitedEarly,
		TargetPercentAchieved: req.TargetPercentAchieved,
		Notes:                 req.Notes,
	}

	if err := s.repo.UpdateTrade(c.Request.Context(), trade); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "Trade not found")
			return
		}
		s.logger.Error().Err(err).Str("trade_id", trade.ID).Msg("Failed to update trade")
		errorResponse(c, http.StatusInternalServerError, "Failed to update trade")
		return
	}

	s.invalidateAnalytics(c, userID)
	s.eventBus.PublishTradeEvent(events.EventTradeUpdated, userID, trade.ID, trade.ProfitLoss, trade.Session)

	successResponse(c, trade)
}

// handleDeleteTrade removes a trade owned by the user
func (s *Server) handleDeleteTrade(c *gin.Context) {
	userID := s.getUserID(c)
	tradeID, ok := tradeIDParam(c)
	if !ok {
		return
	}

	if err := s.repo.DeleteTrade(c.Request.Context(), userID, tradeID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "Trade not found")
			return
		}
		s.logger.Error().Err(err).Str("trade_id", tradeID).Msg("Failed to delete trade")
		errorResponse(c, http.StatusInternalServerError, "Failed to delete trade")
		return
	}

	s.invalidateAnalytics(c, userID)
	s.eventBus.PublishTradeEvent(events.EventTradeDeleted, userID, tradeID, 0, "")

	successResponse(c, gin.H{"deleted": tradeID})
}

// invalidateAnalytics drops all cached analytics for a user after their
// trade data changes. Cache failures are logged and ignored.
func (s *Server) invalidateAnalytics(c *gin.Context, userID string) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateUser(c.Request.Context(), userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to invalidate analytics cache")
	}
}
