package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trading-mind-backend/config"
	"trading-mind-backend/internal/api"
	"trading-mind-backend/internal/auth"
	"trading-mind-backend/internal/cache"
	"trading-mind-backend/internal/database"
	"trading-mind-backend/internal/events"
	"trading-mind-backend/internal/logging"
	"trading-mind-backend/internal/vault"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:      cfg.LoggingConfig.Level,
		JSONFormat: cfg.LoggingConfig.JSONFormat,
	})
	logger.Info().Msg("Starting trading mind backend")

	ctx := context.Background()

	// Secrets from Vault override environment values when enabled
	vaultClient, err := vault.NewClient(cfg.VaultConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Vault client")
	}
	if vaultClient.Enabled() {
		secrets, err := vaultClient.LoadSecrets(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load secrets from Vault")
		}
		if secrets.JWTSecret != "" {
			cfg.AuthConfig.JWTSecret = secrets.JWTSecret
		}
		if secrets.DBPassword != "" {
			cfg.DatabaseConfig.Password = secrets.DBPassword
		}
		logger.Info().Msg("Secrets loaded from Vault")
	}

	db, err := database.NewDB(database.Config{
		Host:     cfg.DatabaseConfig.Host,
		Port:     cfg.DatabaseConfig.Port,
		User:     cfg.DatabaseConfig.User,
		Password: cfg.DatabaseConfig.Password,
		Database: cfg.DatabaseConfig.Database,
		SSLMode:  cfg.DatabaseConfig.SSLMode,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	repo := database.NewRepository(db)

	// Redis analytics cache is optional; the API recomputes on miss
	var cacheSvc *cache.CacheService
	if cfg.RedisConfig.Enabled {
		cacheSvc, err = cache.NewCacheService(cfg.RedisConfig, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Analytics cache unavailable, continuing without it")
			cacheSvc = nil
		} else {
			defer cacheSvc.Close()
		}
	}

	eventBus := events.NewEventBus()

	var authService *auth.Service
	if cfg.AuthConfig.Enabled {
		authService, err = auth.NewService(repo, auth.Config{
			JWTSecret:            cfg.AuthConfig.JWTSecret,
			AccessTokenDuration:  cfg.AuthConfig.AccessTokenDuration,
			RefreshTokenDuration: cfg.AuthConfig.RefreshTokenDuration,
			MinPasswordLength:    cfg.AuthConfig.MinPasswordLength,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize auth service")
		}

		// Expired refresh sessions are purged hourly
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				authService.CleanupExpiredSessions(context.Background())
			}
		}()
	} else {
		logger.Warn().Msg("Authentication disabled, running in single-user mode")
		if err := repo.EnsureDefaultUser(ctx, uuid.Nil.String()); err != nil {
			logger.Fatal().Err(err).Msg("Failed to create single-user account")
		}
	}

	server := api.NewServer(api.ServerConfig{
		Port:           cfg.ServerConfig.Port,
		Host:           cfg.ServerConfig.Host,
		AllowedOrigins: cfg.ServerConfig.AllowedOrigins,
		ProductionMode: cfg.ServerConfig.ProductionMode,
		ReadTimeout:    time.Duration(cfg.ServerConfig.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.ServerConfig.WriteTimeout) * time.Second,
	}, repo, cacheSvc, eventBus, authService, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ServerConfig.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logger.Info().Msg("Shutdown complete")
}
