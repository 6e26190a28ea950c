package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/petconnect/activities-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Detalles carries per-field messages on validation failures only.
type errorResponse struct {
	Message  string            `json:"message"`
	Detalles map[string]string `json:"detalles,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with per-field detail.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, errorResponse{Message: "Error de validación", Detalles: verr.Fields}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, errorResponse{Message: "El correo ya está registrado"}
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, errorResponse{Message: "Usuario no encontrado"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Message: "Contraseña incorrecta"}
	case errors.Is(err, domain.ErrActivityNotFound):
		return http.StatusNotFound, errorResponse{Message: "Actividad no encontrada"}
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return http.StatusConflict, errorResponse{Message: "Ya estás inscrito en esta actividad"}
	case errors.Is(err, domain.ErrActivityFull):
		return http.StatusConflict, errorResponse{Message: "No quedan plazas en esta actividad"}
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Message: "Servicio no disponible"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "Error del servidor"}
}
