package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/miniblog/backend/internal/handlers"
	"github.com/miniblog/backend/internal/repositories"
	"github.com/miniblog/backend/pkg/database"
)

// SetupMiddleware configures global Echo middleware and the /metrics
// endpoint. Call once per process: the Prometheus middleware registers its
// collectors with the default registry.
func SetupMiddleware(e *echo.Echo, log zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("miniblog"))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))

	e.GET("/metrics", echoprometheus.NewHandler())
}

// SetupRoutes migrates the schema, wires repositories into handlers and
// registers all application routes.
func SetupRoutes(e *echo.Echo, db *gorm.DB, log zerolog.Logger) error {
	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info().Msg("schema migration completed")

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handlers.NewRequestValidator()

	e.GET("/health", handlers.HealthCheck)

	userRepo := repositories.NewGormUserRepository(db)
	postRepo := repositories.NewGormPostRepository(db)

	api := e.Group("/api/v1")

	userHandler := handlers.NewUserHandler(userRepo, postRepo)
	userHandler.RegisterUserRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(api)

	log.Info().Msg("all routes configured")
	return nil
}
