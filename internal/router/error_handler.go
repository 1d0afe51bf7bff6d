package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/miniblog/backend/internal/models"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain errors to status codes and renders a
// consistent JSON envelope. Unexpected errors are logged without leaking
// details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := resolveError(err, log)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger) (int, string) {
	// Echo's own errors: bind failures, router 404s, handler-raised 400s.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrPostNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, models.ErrUsernameTaken),
		errors.Is(err, models.ErrUserHasPosts):
		return http.StatusConflict, err.Error()

	case errors.Is(err, models.ErrAuthorNotFound):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, models.ErrAuthorUnresolved):
		// A resolvable author is a store invariant; a miss is an internal
		// fault, not a client error.
		log.Error().Err(err).Msg("author reference unresolved")
		return http.StatusInternalServerError, "internal server error"

	default:
		log.Error().Err(err).Msg("unhandled error")
		return http.StatusInternalServerError, "internal server error"
	}
}
