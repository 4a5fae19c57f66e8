package main

import (
	"context"
	"log/slog"
	"os"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/handlers"
	"restaurant-ordering-api/logging"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/routes"
	"restaurant-ordering-api/seed"
	"restaurant-ordering-api/services"
	"restaurant-ordering-api/store"
	"restaurant-ordering-api/uploads"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)
	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := store.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	images, err := uploads.NewDisk(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return err
	}
	tokens := middleware.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	auth, err := services.NewAuthService(db, tokens, cfg.BcryptCost, logger.With("component", "auth"))
	if err != nil {
		return err
	}
	menu := services.NewMenuService(db, images, logger.With("component", "menu"))

	var validator services.LineItemValidator
	if cfg.ValidateOrderItems {
		validator = services.NewMenuLineItemValidator(db)
	}
	orders := services.NewOrderService(db, validator, logger.With("component", "orders"))

	// Admin account and baseline menu must exist before the first request
	admin := seed.Admin{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	if err := seed.Run(context.Background(), db, auth, admin, logger.With("component", "seed")); err != nil {
		return err
	}

	r := routes.NewEngine(routes.Deps{
		Handler:     handlers.New(auth, menu, orders, db, logger),
		Tokens:      tokens,
		Permissions: middleware.NewPermissions(db, logger.With("component", "authz")),
		UploadDir:   images.Dir(),
		CORSOrigin:  cfg.CORSOrigin,
		Logger:      logger.With("component", "http"),
	})
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	logger.Info("server starting", "port", cfg.Port, "db_driver", cfg.DBDriver, "validate_items", cfg.ValidateOrderItems)
	return r.Run(":" + cfg.Port)
}
