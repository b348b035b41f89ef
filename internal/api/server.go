package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"trading-mind-backend/internal/auth"
	"trading-mind-backend/internal/cache"
	"trading-mind-backend/internal/database"
	"trading-mind-backend/internal/events"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RateLimiter provides simple in-memory rate limiting per endpoint
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int           // max requests
	window   time.Duration // time window
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Allow checks if a request is allowed for the given key
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-r.window)

	var recent []time.Time
	for _, t := range r.requests[key] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= r.limit {
		r.requests[key] = recent
		return false
	}

	r.requests[key] = append(recent, now)
	return true
}

// Server represents the HTTP API server
type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	repo        *database.Repository
	cacheSvc    *cache.CacheService // Can be nil when Redis is disabled
	eventBus    *events.EventBus
	authService *auth.Service
	authEnabled bool
	config      ServerConfig
	logger      zerolog.Logger
	rateLimiter *RateLimiter
	wsHub       *WSHub
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	AllowedOrigins string
	ProductionMode bool
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// NewServer creates a new API server
func NewServer(
	config ServerConfig,
	repo *database.Repository,
	cacheSvc *cache.CacheService, // Can be nil if Redis is disabled
	eventBus *events.EventBus,
	authService *auth.Service, // Can be nil if auth is disabled
	logger zerolog.Logger,
) *Server {
	if config.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	if config.AllowedOrigins == "" || config.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(config.AllowedOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	server := &Server{
		router:      router,
		repo:        repo,
		cacheSvc:    cacheSvc,
		eventBus:    eventBus,
		authService: authService,
		authEnabled: authService != nil,
		config:      config,
		logger:      logger.With().Str("component", "api").Logger(),
		rateLimiter: NewRateLimiter(120, time.Minute),
		wsHub:       NewWSHub(logger),
	}

	server.setupRoutes()

	// Fan system events out to connected websocket clients
	eventBus.SubscribeAll(server.wsHub.HandleEvent)
	go server.wsHub.Run()

	return server
}

// rateLimitMiddleware rate limits requests by path
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.rateLimiter.Allow(c.FullPath()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests to this endpoint. Please slow down.",
				"path":    c.FullPath(),
			})
			return
		}
		c.Next()
	}
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// Auth routes (public, no authentication required)
	if s.authEnabled {
		authHandlers := auth.NewHandlers(s.authService)
		authGroup := s.router.Group("/api/auth")
		authHandlers.RegisterRoutes(authGroup, s.authService.GetJWTManager())
	}

	// Auth status endpoint (always available)
	s.router.GET("/api/auth/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"auth_enabled": s.authEnabled})
	})

	// API routes (protected when auth is enabled)
	api := s.router.Group("/api")
	api.Use(s.rateLimitMiddleware())

	if s.authEnabled {
		api.Use(auth.Middleware(s.authService.GetJWTManager()))
	}

	{
		// Trade endpoints
		api.POST("/trades", s.handleCreateTrade)
		api.GET("/trades", s.handleListTrades)
		api.GET("/trades/:id", s.handleGetTrade)
		api.PUT("/trades/:id", s.handleUpdateTrade)
		api.DELETE("/trades/:id", s.handleDeleteTrade)

		// Trading plan endpoints
		api.GET("/plan", s.handleGetPlan)
		api.PUT("/plan", s.handleUpsertPlan)
		api.DELETE("/plan", s.handleDeletePlan)

		// Analytics endpoints
		api.GET("/analytics/state", s.handleGetState)
		api.GET("/analytics/forecast/:session", s.handleGetForecast)
		api.GET("/analytics/insights", s.handleGetInsights)
		api.GET("/analytics/state-history", s.handleGetStateHistory)

		// Dashboard endpoints
		api.GET("/dashboard", s.handleGetDashboard)
		api.GET("/dashboard/summary", s.handleGetDashboardSummary)
		api.GET("/dashboard/insights", s.handleGetDashboardInsights)

		// WebSocket event stream
		api.GET("/ws", s.handleWebSocket)
	}
}

// Start begins serving HTTP requests
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info().Str("addr", addr).Msg("HTTP server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info().Msg("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth reports service health including backing stores
func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := s.repo.HealthCheck(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	cacheStatus := "disabled"
	if s.cacheSvc != nil {
		cacheStatus = "degraded"
		if s.cacheSvc.IsHealthy() {
			cacheStatus = "healthy"
		}
	}

	if dbStatus != "healthy" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": dbStatus,
			"cache":    cacheStatus,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}

// errorResponse is a helper to send error responses
func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":   true,
		"message": message,
	})
}

// successResponse is a helper to send success responses
func successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// getUserID returns the user ID from the context, or a fixed ID when auth
// is disabled (single-user mode)
func (s *Server) getUserID(c *gin.Context) string {
	if !s.authEnabled {
		return uuid.Nil.String()
	}
	return auth.GetUserID(c)
}

// tradeIDParam validates the :id path parameter as a UUID. Rejecting
// malformed IDs here keeps garbage out of the SQL layer.
func tradeIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid trade ID")
		return "", false
	}
	return id, true
}
