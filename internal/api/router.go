package api

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"firefly-assistant/docs"
	"firefly-assistant/internal/api/handlers"
	"firefly-assistant/pkg/auth"
	"firefly-assistant/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Handlers groups the route handlers. Auth is nil when login is disabled;
// History routes are only mounted when EnableHistory is set.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Transactions  *handlers.TransactionHandler
	Vocabulary    *handlers.VocabularyHandler
	Settings      *handlers.SettingsHandler
	EnableHistory bool
}

type Config struct {
	// StaticDir holds index.html; empty means search for web/static.
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SetupRouter builds the app. A nil jwtManager leaves /api unprotected.
func SetupRouter(h Handlers, jwtManager *auth.JWTManager, cfg Config, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "firefly-assistant " + handlers.Version,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebStaticPath(appLogger)
	}
	if staticDir != "" {
		appLogger.Info("Serving static files", zap.String("path", staticDir))
		app.Static("/static", staticDir)
	} else {
		appLogger.Warn("Web static directory not found, static files will not be served")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		indexPath := filepath.Join(staticDir, "index.html")
		if staticDir == "" || !fileExists(indexPath) {
			return c.Status(fiber.StatusNotFound).SendString("Web interface not found. Please ensure web/static/index.html exists.")
		}
		return c.SendFile(indexPath)
	})

	if h.Auth != nil {
		authGroup := app.Group("/user/auth")
		authGroup.Post("/login", h.Auth.Login)
		authGroup.Post("/refresh", h.Auth.RefreshToken)
	}

	api := app.Group("/api", middleware.AuthMiddleware(jwtManager, appLogger))

	api.Post("/parse", h.Transactions.Parse)
	api.Post("/record", h.Transactions.Record)
	api.Get("/transactions", h.Transactions.GetTransactions)
	if h.EnableHistory {
		api.Get("/history", h.Transactions.GetHistory)
	}

	api.Get("/tags-and-categories", h.Vocabulary.GetTagsAndCategories)
	api.Get("/accounts", h.Vocabulary.GetAccounts)

	api.Get("/default_account", h.Settings.GetDefaultAccount)
	api.Post("/default", h.Settings.UpdateDefault)

	return app
}

// findWebStaticPath looks for web/static relative to the working directory.
func findWebStaticPath(logger *zap.Logger) string {
	paths := []string{
		"web/static",
		"../web/static",
		"../../web/static",
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			logger.Debug("Found web static path", zap.String("path", path))
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
