package main

import (
	"flag"
	"log"

	"github.com/Ashmit12092000/ems/internal/app"
	"github.com/Ashmit12092000/ems/internal/config"
	"github.com/Ashmit12092000/ems/internal/shared/apperror"
	"github.com/Ashmit12092000/ems/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

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
	zap.ReplaceGlobals(zl)

	apperror.Init()

	if err := app.RunConsumer(cfg, zl); err != nil {
		zl.Fatal("run consumer failed", zap.Error(err))
	}
}
