package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/api/metrics"
	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

// errorResponse is the error envelope for single-message errors.
type errorResponse struct {
	Error string `json:"error"`
}

// validationResponse carries field-keyed messages.
type validationResponse struct {
	Errors validation.Errors `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation failures as {"errors": {field: [messages]}} with 400.
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var verrs validation.Errors
		if errors.As(err, &verrs) {
			metrics.ValidationFailuresTotal.WithLabelValues(resourceOf(c)).Inc()
			_ = c.JSON(http.StatusBadRequest, validationResponse{Errors: verrs})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var upload *domain.UploadError
	if errors.As(err, &upload) {
		return http.StatusBadRequest, upload.Message
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		metrics.ConflictsTotal.WithLabelValues(strings.ToLower(conflict.Resource)).Inc()
		return http.StatusConflict, conflict.Error()
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidPagination):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// resourceOf names the resource a route serves, for metric labels.
func resourceOf(c echo.Context) string {
	p := c.Path()
	switch {
	case strings.HasPrefix(p, "/auth"):
		return "user"
	case strings.HasPrefix(p, "/api/data"):
		return "data"
	case strings.HasPrefix(p, "/api/service"):
		return "service"
	}
	return "other"
}
