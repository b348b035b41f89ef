package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"trading-mind-backend/internal/analytics"
	"trading-mind-backend/internal/cache"
	"trading-mind-backend/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	stateWindowSize    = 10
	forecastSampleSize = 20
	defaultHistorySize = 10
	maxHistorySize     = 50
)

// cachedJSON reads a cached payload into dest. Returns true on a hit.
func (s *Server) cachedJSON(c *gin.Context, key string, dest interface{}) bool {
	if s.cacheSvc == nil {
		return false
	}
	err := s.cacheSvc.GetJSON(c.Request.Context(), key, dest)
	if err == nil {
		return true
	}
	if err != cache.ErrCacheMiss {
		s.logger.Debug().Err(err).Str("key", key).Msg("Cache read failed")
	}
	return false
}

// storeJSON caches a computed payload. Failures are logged and ignored.
func (s *Server) storeJSON(c *gin.Context, key string, value interface{}) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.SetJSON(c.Request.Context(), key, value, cache.DefaultAnalyticsTTL); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// handleGetState classifies the user's current psychological state from
// their most recent trades
func (s *Server) handleGetState(c *gin.Context) {
	userID := s.getUserID(c)
	key := fmt.Sprintf(cache.KeyState, userID)

	var cached analytics.PsychologicalState
	if s.cachedJSON(c, key, &cached) {
		successResponse(c, &cached)
		return
	}

	trades, err := s.repo.GetRecentTrades(c.Request.Context(), userID, stateWindowSize)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load trades for state")
		errorResponse(c, http.StatusInternalServerError, "Failed to compute psychological state")
		return
	}

	state := analytics.ClassifyState(trades)
	s.storeJSON(c, key, state)
	s.eventBus.PublishStateChanged(userID, state.State, state.Confidence)

	successResponse(c, state)
}

// handleGetForecast forecasts the user's performance for a trading session
func (s *Server) handleGetForecast(c *gin.Context) {
	userID := s.getUserID(c)
	session := strings.ToUpper(c.Param("session"))
	if !database.ValidSession(session) {
		errorResponse(c, http.StatusBadRequest, "Session must be one of LONDON, NY, ASIA")
		return
	}

	key := fmt.Sprintf(cache.KeyForecast, userID, session)
	var cached analytics.SessionForecast
	if s.cachedJSON(c, key, &cached) {
		successResponse(c, &cached)
		return
	}

	trades, err := s.repo.GetTradesForUser(c.Request.Context(), userID, database.TradeFilter{
		Session: session,
		Limit:   forecastSampleSize,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("session", session).Msg("Failed to load trades for forecast")
		errorResponse(c, http.StatusInternalServerError, "Failed to compute session forecast")
		return
	}

	forecast := analytics.ForecastSession(trades, session)
	s.storeJSON(c, key, forecast)

	successResponse(c, forecast)
}

// handleGetInsights generates performance insights over a period
func (s *Server) handleGetInsights(c *gin.Context) {
	userID := s.getUserID(c)
	period := strings.ToUpper(c.DefaultQuery("period", analytics.PeriodMonth))
	if !analytics.ValidPeriod(period) {
		errorResponse(c, http.StatusBadRequest, "Period must be one of WEEK, MONTH, QUARTER, YEAR")
		return
	}

	key := fmt.Sprintf(cache.KeyInsights, userID, period)
	var cached analytics.PerformanceInsights
	if s.cachedJSON(c, key, &cached) {
		successResponse(c, &cached)
		return
	}

	from, to := analytics.PeriodWindow(period)
	trades, err := s.repo.GetTradesForUser(c.Request.Context(), userID, database.TradeFilter{From: from, To: to})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load trades for insights")
		errorResponse(c, http.StatusInternalServerError, "Failed to compute insights")
		return
	}

	insights := analytics.GenerateInsights(trades, period)
	s.storeJSON(c, key, insights)

	successResponse(c, insights)
}

// handleGetStateHistory reconstructs the user's psychological state
// transitions over their recent trades
func (s *Server) handleGetStateHistory(c *gin.Context) {
	userID := s.getUserID(c)

	limit := defaultHistorySize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errorResponse(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		if n > maxHistorySize {
			n = maxHistorySize
		}
		limit = n
	}

	key := fmt.Sprintf(cache.KeyHistory, userID, limit)
	var cached analytics.StateHistory
	if s.cachedJSON(c, key, &cached) {
		successResponse(c, &cached)
		return
	}

	// Fetch extra trades: transitions are recorded only on state changes,
	// so producing limit entries can require more than limit trades.
	trades, err := s.repo.GetRecentTrades(c.Request.Context(), userID, limit*2)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load trades for state history")
		errorResponse(c, http.StatusInternalServerError, "Failed to compute state history")
		return
	}

	history := analytics.AnalyzeStateHistory(trades, limit)
	s.storeJSON(c, key, history)

	successResponse(c, history)
}
