package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"iot-dashboard/common/database"
	"iot-dashboard/common/logger"
	"iot-dashboard/internal/config"
	"iot-dashboard/internal/repository"

	"go.uber.org/zap"
)

// seed-db creates the catalog tables and upserts the mock devices and users.
// Connection settings come from the same DB_* variables as the server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.NewLogger(cfg.Log.Level, "console", "seed-db")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Cannot connect to database", zap.String("database", cfg.Database.Database), zap.Error(err))
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	devices := repository.SeedDevices(now)
	users := repository.SeedUsers(now)
	if err := repository.SeedPostgres(ctx, db, devices, users, log); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Catalog seeded",
		zap.String("database", cfg.Database.Database),
		zap.Int("devices", len(devices)),
		zap.Int("users", len(users)),
	)
}
