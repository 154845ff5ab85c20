package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/civicpulse/backend/internal/classify"
	"github.com/civicpulse/backend/internal/config"
	"github.com/civicpulse/backend/internal/db"
	httpapi "github.com/civicpulse/backend/internal/http"
	"github.com/civicpulse/backend/internal/metrics"
	"github.com/civicpulse/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "civicpulse-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
	} else {
		logger.Info().Msg("redis not configured, submission rate limiting disabled")
	}

	metrics.Register()

	zones := service.DefaultZoneResolver()
	table := service.DefaultResponsibilityTable()
	sla := service.DefaultSLAPolicy()
	lifecycle := service.NewLifecycle()
	pipeline := service.NewEnrichmentPipeline(zones, table, sla, lifecycle)

	classifier := classify.MockAdapter{ModelVersion: "mock-v1"}
	logger.Info().Msg("using mock image classifier")

	router := httpapi.Router(cfg, store, pipeline, lifecycle, table, sla, classifier, redisClient, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
