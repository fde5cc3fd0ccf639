package main

import (
	"context"
	"log"

	"estimador/internal/adapter/http/routes"
	"estimador/internal/config"
	"estimador/internal/logger"

	"go.uber.org/zap"
)

// @title           Estimador API
// @version         1.0
// @description     Estimate builder: templates, priced estimates and reports.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := routes.Run(context.Background(), cfg, zapLogger); err != nil {
		zapLogger.Fatal("Failed to startup the application", zap.Error(err))
	}
}
