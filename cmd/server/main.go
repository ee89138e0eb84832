package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mimo/internal/commons"
	"mimo/internal/config"
	"mimo/internal/draft"
	"mimo/internal/events"
	"mimo/internal/infrastructure/logger"
	"mimo/internal/infrastructure/mysql"
	infraredis "mimo/internal/infrastructure/redis"
	"mimo/internal/media"
	"mimo/internal/order"
	"mimo/internal/server"
	"mimo/internal/shipping"
)

func main() {
	var cfg *config.Config
	var err error
	if path := os.Getenv("MIMO_CONFIG"); path != "" {
		cfg, err = commons.LoadConfig(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	cancel()
	if err != nil {
		zapLogger.Fatal("connecting to redis", zap.Error(err))
	}
	defer redisClient.Close()
	zapLogger.Info("redis connected")

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Events.Brokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Events)
		if err != nil {
			zapLogger.Fatal("creating kafka publisher", zap.Error(err))
		}
		publisher = kafkaPublisher
		zapLogger.Info("kafka publisher ready", zap.Strings("brokers", cfg.Events.Brokers))
	} else {
		zapLogger.Warn("no event brokers configured, order events disabled")
	}
	defer publisher.Close()

	draftCtrl, draftSvc := draft.NewModule(redisClient, cfg, zapLogger)
	shippingCtrl := shipping.NewModule(cfg, draftSvc, zapLogger)
	mediaCtrl := media.NewModule(cfg, draftSvc, zapLogger)
	orderModule := order.NewModule(db, cfg, draftSvc, publisher, zapLogger)

	router := server.NewRouter(draftCtrl, shippingCtrl, mediaCtrl, orderModule)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
