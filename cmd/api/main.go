package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samudra-paket/tracking-service/internal/api"
	"github.com/samudra-paket/tracking-service/internal/core/service"
	"github.com/samudra-paket/tracking-service/internal/infrastructure/config"
	mongodb "github.com/samudra-paket/tracking-service/internal/infrastructure/db/mongo"
	redisdb "github.com/samudra-paket/tracking-service/internal/infrastructure/db/redis"
	"github.com/samudra-paket/tracking-service/internal/infrastructure/queue"
	"github.com/samudra-paket/tracking-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet, stderr is all we have.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	shipmentRepo := mongodb.NewShipmentRepository(db)
	if err := shipmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}
	eventRepo := mongodb.NewEventRepository(db)

	dedup := redisdb.NewDedupChecker(rdb)
	cache := redisdb.NewTimelineCache(rdb, cfg.TimelineCacheTTL)

	// --- Services ---
	shipmentService := service.NewShipmentService(shipmentRepo, log)
	eventService := service.NewEventService(shipmentRepo, eventRepo, dedup, cache, log)
	trackingService := service.NewTrackingService(shipmentRepo, cache, log)

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		ShipmentService: shipmentService,
		TrackingService: trackingService,
		Dispatcher:      dispatcher,
		Mongo:           db,
		Redis:           rdb,
		JWTSecret:       cfg.JWTSecret,
		Logger:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("tracking service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("tracking service stopped")
}
