package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/doctornein/dynasty-tokens/internal/config"
	"github.com/doctornein/dynasty-tokens/internal/handler"
	"github.com/doctornein/dynasty-tokens/internal/logger"
	"github.com/doctornein/dynasty-tokens/internal/provider"
	postgres "github.com/doctornein/dynasty-tokens/internal/repository"
	pgimpl "github.com/doctornein/dynasty-tokens/internal/repository/postgres"
	"github.com/doctornein/dynasty-tokens/internal/rewards"
	"github.com/doctornein/dynasty-tokens/internal/service"
)

func main() {
	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectPgx, err := postgres.New(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatalf("❌ Postgres connection failed: %v", err)
	}
	defer connectPgx.Close()

	// Provider adapter, optionally fronted by a redis read-through cache.
	client := provider.NewClient(cfg.Provider, appLogger)
	var stats service.StatsProvider = client
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		stats = provider.NewCachedClient(client, rdb, time.Duration(cfg.Redis.TTL)*time.Second, appLogger)
		appLogger.Info().Str("addr", cfg.Redis.Addr).Msg("provider cache enabled")
	}

	// Repositories and services
	pool := connectPgx.Pool()
	rewardRepo := pgimpl.NewRewardRepository(pool)
	cardRepo := pgimpl.NewCardRepository(pool)
	txm := pgimpl.NewTxManager(pool)

	detector := rewards.NewDetector(rewards.DefaultThresholds(), nil, appLogger)
	scanner := rewards.NewScanner(stats, detector, appLogger)

	rewardSvc := service.NewRewardService(rewardRepo, cardRepo, txm, scanner, appLogger)
	arenaSvc := service.NewArenaService(stats, appLogger)
	ratingSvc := service.NewRatingService(appLogger)
	cardSvc := service.NewCardService(cardRepo, appLogger)

	// HTTP surface
	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, connectPgx, cfg.Server.SettlementToken, rewardSvc, arenaSvc, ratingSvc, cardSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		appLogger.Info().Int("port", cfg.Server.Port).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("✅ Service stopped")
}
