package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/labomak/dashboard/internal/application/service"
	"github.com/labomak/dashboard/internal/bootstrap"
	"github.com/labomak/dashboard/internal/config"
	"github.com/labomak/dashboard/internal/presentation/http/routes"
	"github.com/labomak/dashboard/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	backend, err := bootstrap.Open(context.Background(), cfg, false)
	if err != nil {
		log.Fatalf("Failed to start backend: %v", err)
	}
	defer backend.Close()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize services
	authService := service.NewAuthService(backend.Users, jwtManager)
	exportService := service.NewExportService(backend.Gateway)

	handlers := routes.NewHandlers(backend.Gateway, backend.Numbers, backend.Prober, authService, exportService)

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: backend.Idempotency,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		backend.Close()
		os.Exit(1)
	}
}
