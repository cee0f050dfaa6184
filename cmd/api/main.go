package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/spendlog/spendlog-backend/internal/auth"
	"github.com/spendlog/spendlog-backend/internal/config"
	"github.com/spendlog/spendlog-backend/internal/expense"
	"github.com/spendlog/spendlog-backend/internal/httperr"
	handlers "github.com/spendlog/spendlog-backend/internal/http"
	"github.com/spendlog/spendlog-backend/internal/logging"
	"github.com/spendlog/spendlog-backend/internal/router"
	"github.com/spendlog/spendlog-backend/internal/upload"
	"github.com/spendlog/spendlog-backend/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Init(cfg.LogLevel, cfg.Env)
	logging.Logger.Info("starting spendlog api")

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Logger.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logging.Logger.Fatalf("error pinging database: %v", err)
	}

	tokens := auth.NewTokenService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	uploads := upload.NewStore(cfg.UploadDir)
	users := user.NewRepository(pool)
	expenses := expense.NewRepository(pool)

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.ErrorHandler,
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	r := &router.Router{
		Auth:     handlers.NewAuthHandler(users, tokens, uploads, cfg.RefreshTokenTTL),
		Expenses: expense.NewHandler(expenses),
		AuthMW:   auth.Middleware(tokens),
	}
	r.RegisterRoutes(app)

	logging.Logger.Infof("listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logging.Logger.Fatalf("server stopped: %v", err)
	}
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logging.Logger.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		}).Info("request")
		return err
	}
}
