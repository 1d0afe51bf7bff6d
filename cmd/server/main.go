package main

import (
	"github.com/labstack/echo/v4"

	"github.com/miniblog/backend/internal/router"
	"github.com/miniblog/backend/pkg/config"
	"github.com/miniblog/backend/pkg/database"
	"github.com/miniblog/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	db, err := database.Open(database.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()
	log.Info().Str("driver", cfg.DBDriver).Msg("connected to database")

	e := echo.New()
	e.HideBanner = true

	router.SetupMiddleware(e, log)
	if err := router.SetupRoutes(e, db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
