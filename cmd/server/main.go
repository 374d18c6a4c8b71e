package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pbkm/badminton-split/internal/config"
	"github.com/pbkm/badminton-split/internal/database"
	"github.com/pbkm/badminton-split/internal/handler"
	"github.com/pbkm/badminton-split/internal/logger"
	"github.com/pbkm/badminton-split/internal/metrics"
	"github.com/pbkm/badminton-split/internal/middleware"
	"github.com/pbkm/badminton-split/internal/notify"
	"github.com/pbkm/badminton-split/internal/queue"
	"github.com/pbkm/badminton-split/internal/repository"
	"github.com/pbkm/badminton-split/internal/router"
	"github.com/pbkm/badminton-split/internal/service"
)

func main() {
	cfg := config.Load()
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(cfg)
	if err != nil {
		zl.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}
	if cfg.DBSeed {
		if err := database.Seed(db); err != nil {
			zl.Fatal("seed catalog", zap.Error(err))
		}
	}

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		zl.Info("redis disabled; catalog cache and rate limiting are off")
	}

	m := metrics.New()
	catalog := repository.NewCatalogRepo(db)
	bookings := repository.NewBookingRepo(db)
	publisher := service.NewPublisher(cfg.AMQPURL, zl.Named("publisher"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AMQPURL != "" {
		var notifier queue.Notifier
		if cfg.TelegramToken != "" {
			tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
			if err != nil {
				zl.Warn("telegram disabled", zap.Error(err))
			} else {
				notifier = tg
			}
		}
		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.BookingLogPath, notifier, zl.Named("consumer"))
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	} else {
		zl.Info("RABBITMQ_URL not set; booking events are not published")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(zl.Named("http")))

	router.RegisterRoutes(e, m.Handler())
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, zl))
	router.RegisterCatalog(e,
		handler.NewCatalogHandler(catalog, middleware.NewCacheInvalidator(cacheCfg, rdb), m, zl, cfg.StoreTimeout),
		middleware.NewRedisCache(cacheCfg, rdb), cfg.JWTSecret)
	router.RegisterInvoice(e, handler.NewInvoiceHandler(catalog, m, zl, cfg.StoreTimeout))
	router.RegisterBookings(e,
		handler.NewBookingHandler(catalog, bookings, publisher, m, zl, cfg.StoreTimeout),
		middleware.NewTokenBucket(rlCfg, rdb, zl.Named("ratelimit")))

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("db", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
