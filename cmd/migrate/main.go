package main

import (
	"context"
	"flag"
	"log"

	"github.com/Ashmit12092000/ems/internal/config"
	"github.com/Ashmit12092000/ems/internal/shared/connection"
	"github.com/Ashmit12092000/ems/internal/shared/logger"
	"github.com/Ashmit12092000/ems/internal/store"
	"github.com/Ashmit12092000/ems/internal/store/sqlstore"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Usage: migrate [-config path] [up|down] [-steps n]
func main() {
	configPath := flag.String("config", "", "path to config file")
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Parse()

	direction := flag.Arg(0)
	if direction == "" {
		direction = "up"
	}

	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zl.Sync()
	zl = zl.Named("migrate")

	pool, err := connection.ConnectPGXWithRetry(context.Background(), cfg.Database, zl)
	if err != nil {
		zl.Fatal("connect database failed", zap.Error(err))
	}
	defer pool.Close()

	db := sqlstore.OpenDB(pool)
	defer db.Close()

	switch direction {
	case "up":
		err = store.RunMigrations(db, zl)
	case "down":
		err = store.RollbackMigrations(db, *steps, zl)
	default:
		zl.Fatal("unknown direction, want up or down", zap.String("direction", direction))
	}
	if err != nil {
		zl.Fatal("migration failed", zap.String("direction", direction), zap.Error(err))
	}
}
