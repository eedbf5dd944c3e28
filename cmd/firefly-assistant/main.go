package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firefly-assistant/internal/api"
	"firefly-assistant/internal/api/handlers"
	"firefly-assistant/internal/app"
	"firefly-assistant/pkg/auth"
	"firefly-assistant/pkg/config"
	"firefly-assistant/pkg/logger"

	"go.uber.org/zap"
)

// @title Firefly Assistant API
// @version 0.1.2
// @description Turns free-text spending notes into Firefly III transactions.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	logger.Info("Starting firefly-assistant", zap.String("version", handlers.Version))

	ctx := context.Background()
	deps, err := app.Build(ctx, cfg, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer deps.Close()

	var jwtManager *auth.JWTManager
	routes := api.Handlers{
		Transactions:  handlers.NewTransactionHandler(deps.Parser, deps.Recorder, deps.Ledger, appLogger),
		Vocabulary:    handlers.NewVocabularyHandler(deps.Vocabulary, deps.Ledger, appLogger),
		Settings:      handlers.NewSettingsHandler(deps.Settings, deps.Ledger, cfg.Firefly.URL, appLogger),
		EnableHistory: deps.History != nil,
	}
	if deps.History != nil {
		routes.Transactions.WithHistory(deps.History, cfg.History.Limit)
	}
	if cfg.Auth.Enabled {
		jwtManager = auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
		authService, err := app.NewAuthService(cfg, jwtManager, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize auth", zap.Error(err))
		}
		routes.Auth = handlers.NewAuthHandler(authService, appLogger)
	}

	server := api.SetupRouter(routes, jwtManager, api.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := server.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}
