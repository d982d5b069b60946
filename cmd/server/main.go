package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/Priiiyaa/Gratify/internal/adapter/cache/redis"
	"github.com/Priiiyaa/Gratify/internal/adapter/email"
	mongoAdapter "github.com/Priiiyaa/Gratify/internal/adapter/mongo"
	natsAdapter "github.com/Priiiyaa/Gratify/internal/adapter/nats"
	"github.com/Priiiyaa/Gratify/internal/adapter/storage/s3"
	"github.com/Priiiyaa/Gratify/internal/api/handler"
	"github.com/Priiiyaa/Gratify/internal/api/router"
	"github.com/Priiiyaa/Gratify/internal/auth"
	"github.com/Priiiyaa/Gratify/internal/config"
	"github.com/Priiiyaa/Gratify/internal/platform/logger"
	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewLogger()
	defer log.Sync()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	mongoClient, err := mongoAdapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	foodRepo := mongoAdapter.NewFoodMongoRepository(mongoClient, cfg.Mongo.Database)
	userRepo := mongoAdapter.NewUserMongoRepository(mongoClient, cfg.Mongo.Database)
	reservationRepo := mongoAdapter.NewReservationMongoRepository(mongoClient, cfg.Mongo.Database)
	statsRepo := mongoAdapter.NewUserStatsMongoRepository(mongoClient, cfg.Mongo.Database)

	// Optional infrastructure. The server degrades gracefully: a missing cache,
	// broker, object store or mailer disables that feature, not the server.
	var leaderboardCache usecase.LeaderboardCache
	if cache, err := redis.NewLeaderboardCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Warn("Redis unavailable, leaderboard will be computed per request", zap.Error(err))
	} else {
		leaderboardCache = cache
		defer cache.Close()
	}

	var publisher usecase.EventPublisher
	if pub, err := natsAdapter.NewPublisher(cfg.NATS.URL); err != nil {
		log.Warn("NATS unavailable, domain events will not be published", zap.Error(err))
	} else {
		publisher = pub
		defer pub.Close()
	}

	var storage usecase.ImageStorage
	if cfg.Storage.AccessKey != "" {
		st, err := s3.NewS3Storage(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.UseSSL, log)
		if err != nil {
			log.Warn("Object storage unavailable, photo uploads disabled", zap.Error(err))
		} else {
			storage = st
		}
	}

	var mailer email.EmailSender
	if cfg.SMTP.Host != "" {
		m, err := email.NewSMTPSender(cfg.SMTP, log)
		if err != nil {
			log.Warn("SMTP misconfigured, reservation notifications disabled", zap.Error(err))
		} else {
			mailer = m
		}
	}

	mm := metrics.NewMetricsManager("gratify")
	go func() {
		if err := metrics.StartMetricsServer(cfg.Metrics.Port, log, mm.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()

	userUC := usecase.NewUserUseCase(userRepo, log)
	foodUC := usecase.NewFoodUseCase(foodRepo, userRepo, storage, publisher, mm, log)
	reservationUC := usecase.NewReservationUseCase(reservationRepo, foodRepo, userRepo, publisher, mailer, mm, log)
	statsUC := usecase.NewUserStatsUseCase(statsRepo, userRepo, leaderboardCache, log)

	verifier := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	mux := router.New(router.Handlers{
		User:        handler.NewUserHandler(userUC, mm, log),
		Food:        handler.NewFoodHandler(foodUC, mm, log),
		Reservation: handler.NewReservationHandler(reservationUC, mm, log),
		UserStats:   handler.NewUserStatsHandler(statsUC, mm, log),
		Login:       handler.NewLoginHandler(userUC, mm, log),
	}, verifier, mm, log)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("port", cfg.HTTP.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
