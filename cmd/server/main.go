package main

import (
	"github.com/labstack/echo/v4"

	"github.com/cinelist/backend/internal/router"
	"github.com/cinelist/backend/pkg/config"
	"github.com/cinelist/backend/pkg/logger"
	"github.com/cinelist/backend/validators"
)

func main() {
	logger.Init()
	defer logger.Sync()

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize databases", err)
	}
	defer db.CloseDB()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRouter(e, db, cfg); err != nil {
		logger.Fatal("Failed to set up router", err)
	}

	logger.Info("Starting server", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", err)
	}
}
