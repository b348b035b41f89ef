package api

import (
	"errors"
	"net/http"
	"strings"

	"trading-mind-backend/internal/database"
	"trading-mind-backend/internal/events"

	"github.com/gin-gonic/gin"
)

// PlanRequest is the payload for creating or replacing a trading plan
type PlanRequest struct {
	MaxRiskPerTrade   float64  `json:"max_risk_per_trade" binding:"required"`
	MaxDailyRisk      float64  `json:"max_daily_risk" binding:"required"`
	MaxOpenTrades     int      `json:"max_open_trades" binding:"required"`
	PreferredSessions []string `json:"preferred_sessions"`
	Goals             *string  `json:"goals"`
	Rules             *string  `json:"rules"`
}

func (r *PlanRequest) validate() error {
	if r.MaxRiskPerTrade <= 0 {
		return errors.New("max_risk_per_trade must be positive")
	}
	if r.MaxDailyRisk < r.MaxRiskPerTrade {
		return errors.New("max_daily_risk must be at least max_risk_per_trade")
	}
	if r.MaxOpenTrades < 1 {
		return errors.New("max_open_trades must be at least 1")
	}
	for i, session := range r.PreferredSessions {
		session = strings.ToUpper(session)
		if !database.ValidSession(session) {
			return errors.New("preferred_sessions must contain only LONDON, NY, ASIA")
		}
		r.PreferredSessions[i] = session
	}
	return nil
}

// handleGetPlan returns the user's trading plan
func (s *Server) handleGetPlan(c *gin.Context) {
	userID := s.getUserID(c)

	plan, err := s.repo.GetTradingPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "No trading plan found")
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to get trading plan")
		errorResponse(c, http.StatusInternalServerError, "Failed to get trading plan")
		return
	}

	successResponse(c, plan)
}

// handleUpsertPlan creates or replaces the user's trading plan
func (s *Server) handleUpsertPlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := s.getUserID(c)
	plan := &database.TradingPlan{
		UserID:            userID,
		MaxRiskPerTrade:   req.MaxRiskPerTrade,
		MaxDailyRisk:      req.MaxDailyRisk,
		MaxOpenTrades:     req.MaxOpenTrades,
		PreferredSessions: req.PreferredSessions,
		Goals:             req.Goals,
		Rules:             req.Rules,
	}
	if plan.PreferredSessions == nil {
		plan.PreferredSessions = []string{}
	}

	if err := s.repo.UpsertTradingPlan(c.Request.Context(), plan); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save trading plan")
		errorResponse(c, http.StatusInternalServerError, "Failed to save trading plan")
		return
	}

	s.eventBus.PublishPlanEvent(events.EventPlanUpdated, userID)

	successResponse(c, plan)
}

// handleDeletePlan removes the user's trading plan
func (s *Server) handleDeletePlan(c *gin.Context) {
	userID := s.getUserID(c)

	if err := s.repo.DeleteTradingPlan(c.Request.Context(), userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "No trading plan found")
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to delete trading plan")
		errorResponse(c, http.StatusInternalServerError, "Failed to delete trading plan")
		return
	}

	s.eventBus.PublishPlanEvent(events.EventPlanDeleted, userID)

	successResponse(c, gin.H{"deleted": true})
}
