package main

import (
	"context"
	"flag"
	"log"

	"github.com/Ashmit12092000/ems/internal/app"
	"github.com/Ashmit12092000/ems/internal/bootstrap"
	"github.com/Ashmit12092000/ems/internal/config"
	"github.com/Ashmit12092000/ems/internal/shared/apperror"
	"github.com/Ashmit12092000/ems/internal/shared/logger"

	"github.com/gin-gonic/gin"
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
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	cleanup, err := app.BuildApp(context.Background(), r, cfg, zl)
	if err != nil {
		zl.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(r, cfg.Server, bootstrap.NewZapAuditLogger(zl), zl); err != nil {
		zl.Error("http server stopped", zap.Error(err))
	}
}
