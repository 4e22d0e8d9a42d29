package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iot-dashboard/common/database"
	"iot-dashboard/common/logger"
	rediscommon "iot-dashboard/common/redis"
	"iot-dashboard/internal/access"
	"iot-dashboard/internal/config"
	httpapi "iot-dashboard/internal/http"
	"iot-dashboard/internal/i18n"
	"iot-dashboard/internal/repository"
	"iot-dashboard/internal/service"
	"iot-dashboard/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "iot-dashboard")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	catalog, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		log.Fatal("Failed to load locale tables", zap.Error(err))
	}
	ac, err := access.NewController(access.DefaultDestinations())
	if err != nil {
		log.Fatal("Invalid destination table", zap.Error(err))
	}

	// Catalog: PostgreSQL when enabled and reachable, else the built-in mock data
	now := time.Now()
	var (
		devicesRepo repository.DevicesRepository = repository.NewMemoryDevicesRepo(repository.SeedDevices(now))
		usersRepo   repository.UsersRepository   = repository.NewMemoryUsersRepo(repository.SeedUsers(now))
		db          *sql.DB
	)
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			devicesRepo = repository.NewPostgresDevicesRepo(db, log)
			usersRepo = repository.NewPostgresUsersRepo(db, log)
			log.Info("DB enabled for iot-dashboard", zap.String("database", cfg.Database.Database))
		} else {
			log.Warn("DB enabled but connection failed, falling back to in-memory catalog", zap.Error(err))
		}
	}

	var (
		cache       store.KV        = store.NewMemoryKV()
		publisher   store.Publisher = store.NopPublisher{}
		redisClient *redis.Client
	)
	if cfg.RedisEnabled {
		c := rediscommon.NewRedisClient(&cfg.Redis)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rediscommon.Ping(pingCtx, c)
		cancel()
		if err == nil {
			redisClient = c
			cache = store.NewRedisKV(c)
			publisher = store.NewStreamPublisher(c, cfg.EventStream, log)
			log.Info("Redis enabled for iot-dashboard", zap.String("addr", cfg.Redis.Addr))
		} else {
			log.Warn("Redis enabled but unreachable, using in-memory cache", zap.Error(err))
			_ = rediscommon.Close(c)
		}
	}

	sessions := service.NewSessionRegistry(ac, catalog, service.SessionOptions{
		TTL:            cfg.Session.TTL,
		ChatReplyDelay: cfg.Chat.ReplyDelay,
	}, log)
	tokens := service.NewTokenManager([]byte(cfg.Session.Secret), cfg.Session.TTL)

	api := httpapi.NewAPI(httpapi.Deps{
		Access:    ac,
		Catalog:   catalog,
		Auth:      service.NewAuthService(usersRepo, sessions, tokens, publisher, log),
		Devices:   service.NewDeviceService(devicesRepo, catalog, log),
		Users:     service.NewUserService(usersRepo, publisher, log),
		Dashboard: service.NewDashboardService(devicesRepo, log),
		Analytics: service.NewAnalyticsService(devicesRepo, cache, log),
		Security:  service.NewSecurityService(ac),
		Settings:  service.NewSettingsService(catalog, log),
	}, log)
	srv := service.NewServer(cfg.HTTP.Addr, httpapi.NewHandler(api, cfg.HTTP.CORSOrigins, log), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.RunJanitor(ctx, sessionSweepInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	sessions.CloseAll()
	if db != nil {
		_ = database.Close(db)
	}
	if redisClient != nil {
		_ = rediscommon.Close(redisClient)
	}
	log.Info("iot-dashboard stopped")
}
