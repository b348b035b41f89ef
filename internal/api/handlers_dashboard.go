package api

import (
	"fmt"
	"net/http"
	"strings"

	"trading-mind-backend/internal/analytics"
	"trading-mind-backend/internal/cache"
	"trading-mind-backend/internal/database"

	"github.com/gin-gonic/gin"
)

// loadDashboardTrades fetches both trade sets a dashboard needs: the
// period-filtered set and the most recent trades the state classifier
// runs on.
func (s *Server) loadDashboardTrades(c *gin.Context, userID, period string) (periodTrades, recentTrades []database.Trade, err error) {
	from, to := analytics.PeriodWindow(period)
	periodTrades, err = s.repo.GetTradesForUser(c.Request.Context(), userID, database.TradeFilter{From: from, To: to})
	if err != nil {
		return nil, nil, err
	}
	recentTrades, err = s.repo.GetRecentTrades(c.Request.Context(), userID, stateWindowSize)
	if err != nil {
		return nil, nil, err
	}
	return periodTrades, recentTrades, nil
}

func (s *Server) dashboardPeriod(c *gin.Context) (string, bool) {
	period := strings.ToUpper(c.DefaultQuery("period", analytics.PeriodMonth))
	if !analytics.ValidPeriod(period) {
		errorResponse(c, http.StatusBadRequest, "Period must be one of WEEK, MONTH, QUARTER, YEAR")
		return "", false
	}
	return period, true
}

// handleGetDashboard returns the full dashboard for a period
func (s *Server) handleGetDashboard(c *gin.Context) {
	userID := s.getUserID(c)
	period, ok := s.dashboardPeriod(c)
	if !ok {
		return
	}

	key := fmt.Sprintf(cache.KeyDashboard, userID, period)
	var cached analytics.Dashboard
	if s.cachedJSON(c, key, &cached) {
		successResponse(c, &cached)
		return
	}

	periodTrades, recentTrades, err := s.loadDashboardTrades(c, userID, period)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load trades for dashboard")
		errorResponse(c, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	dashboard := analytics.BuildDashboard(periodTrades, recentTrades, period)
	s.storeJSON(c, key, dashboard)

	successResponse(c, dashboard)
}

// handleGetDashboardSummary returns the dashboard without the state and
// insights sub-reports
func (s *Server) handleGetDashboardSummary(c *gin.Context) {
	userID := s.getUserID(c)
	period, ok := s.dashboardPeriod(c)
	if !ok {
		return
	}

	key := fmt.Sprintf(cache.KeySummary, userID, period)
	var cached analytics.DashboardSummary
	if s.cachedJSON(c, key, &cached) {
		successResponse(c, &cached)
		return
	}

	periodTrades, recentTrades, err := s.loadDashboardTrades(c, userID, period)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load trades for dashboard summary")
		errorResponse(c, http.StatusInternalServerError, "Failed to build dashboard summary")
		return
	}

	summary := analytics.BuildDashboardSummary(periodTrades, recentTrades, period)
	s.storeJSON(c, key, summary)

	successResponse(c, summary)
}

// handleGetDashboardInsights returns the dashboard-facing insights payload
func (s *Server) handleGetDashboardInsights(c *gin.Context) {
	userID := s.getUserID(c)
	period, ok := s.dashboardPeriod(c)
	if !ok {
		return
	}

	from, to := analytics.PeriodWindow(period)
	trades, err := s.repo.GetTradesForUser(c.Request.Context(), userID, database.TradeFilter{From: from, To: to})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load trades for dashboard insights")
		errorResponse(c, http.StatusInternalServerError, "Failed to build insights")
		return
	}

	successResponse(c, analytics.BuildPeriodInsights(trades, period))
}
