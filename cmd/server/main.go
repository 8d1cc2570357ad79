package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/api"
	"github.com/d60-Lab/tastegraph/internal/api/handler"
	"github.com/d60-Lab/tastegraph/internal/cache"
	"github.com/d60-Lab/tastegraph/internal/config"
	"github.com/d60-Lab/tastegraph/internal/event"
	"github.com/d60-Lab/tastegraph/internal/mlclient"
	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/internal/service"
	"github.com/d60-Lab/tastegraph/pkg/logger"
	"github.com/d60-Lab/tastegraph/pkg/tracing"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(ctx, "tastegraph", cfg.Tracing.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() {
				shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(shutCtx)
			}()
		}
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.Error("open database failed", zap.Error(err))
		os.Exit(1)
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		logger.Error("migrate failed", zap.Error(err))
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, cache degraded", zap.Error(err))
	}

	// repositories
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	statsRepo := repository.NewUserStatsRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	interRepo := repository.NewInteractionRepository(db)
	saveRepo := repository.NewSaveRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// 事件通道:进程内 Pub/Sub + outbox 派发
	wmLogger := event.NewWatermillLogger(logger.L())
	pubsub := event.NewGoChannelPubSub(wmLogger)
	msgRouter, err := event.NewRouter(wmLogger)
	if err != nil {
		logger.Error("build message router failed", zap.Error(err))
		os.Exit(1)
	}
	event.NewConsumers(userRepo, notifRepo, interRepo).Register(msgRouter, pubsub)

	routerCtx, cancelRouter := context.WithCancel(ctx)
	defer cancelRouter()
	go func() {
		if err := msgRouter.Run(routerCtx); err != nil {
			logger.Error("message router stopped", zap.Error(err))
		}
	}()
	<-msgRouter.Running()

	dispatcher := event.NewDispatcher(outboxRepo, pubsub, cfg.Outbox.BatchSize, cfg.Outbox.PollInterval)
	stopDispatcher := dispatcher.Start()

	followerCache := cache.NewFollowerCache(rdb, 10*time.Minute)
	ml := mlclient.New(cfg.ML.BaseURL, cfg.ML.Timeout, cfg.ML.Enabled)

	// services
	followSvc := service.NewFollowService(db, followRepo, userRepo, statsRepo, convRepo, outboxRepo, followerCache)
	messageSvc := service.NewMessageService(db, msgRepo, convRepo, userRepo, outboxRepo, followSvc)
	notifSvc := service.NewNotificationService(notifRepo, userRepo)
	userSvc := service.NewUserService(db, userRepo, statsRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	saveSvc := service.NewSaveService(saveRepo, userRepo)

	h := handler.New(followSvc, messageSvc, notifSvc, userSvc, saveSvc, ml)
	engine := api.NewRouter(cfg, h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server exited", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	if err := stopDispatcher(shutCtx); err != nil {
		logger.Error("dispatcher shutdown failed", zap.Error(err))
	}
	cancelRouter()
	_ = msgRouter.Close()
	_ = rdb.Close()
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	}
}
