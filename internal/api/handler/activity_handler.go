package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/activities-api/internal/api/metrics"
	"github.com/petconnect/activities-api/internal/core/domain"
	"github.com/petconnect/activities-api/internal/core/ports"
)

// ActivityHandler handles HTTP requests for activity operations.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Create handles POST /api/actividades/crear.
//
// @Summary      Create an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createActivityRequest  true  "Activity details"
// @Success      201   {object}  createActivityResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/actividades/crear [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	var req createActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Datos inválidos")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateActivityInput{
		Name:        req.Nombre,
		Description: req.Descripcion,
		Capacity:    req.Plazas,
		ScheduledAt: req.FechaHora,
	})
	if err != nil {
		return err
	}

	metrics.ActivitiesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createActivityResponse{
		Message:   "Actividad creada",
		Actividad: toActivityResponse(*created),
	})
}

// Enroll handles POST /api/actividades/inscribir.
//
// @Summary      Enroll an account in an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        body  body      enrollRequest  true  "Enrollment request"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/actividades/inscribir [post]
func (h *ActivityHandler) Enroll(c echo.Context) error {
	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Datos inválidos")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start := time.Now()
	err := h.service.Enroll(c.Request().Context(), req.ActividadID, req.UsuarioID)
	metrics.EnrollmentDuration.Observe(time.Since(start).Seconds())
	metrics.EnrollmentsTotal.WithLabelValues(enrollResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Te has inscrito correctamente"})
}

// List handles GET /api/actividades.
//
// @Summary      List all activities
// @Tags         activities
// @Produce      json
// @Success      200  {array}   activityResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/actividades [get]
func (h *ActivityHandler) List(c echo.Context) error {
	activities, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityList(activities))
}

// ListForAccount handles GET /api/mis-actividades/:usuarioId.
//
// @Summary      List the activities an account is enrolled in
// @Tags         activities
// @Produce      json
// @Param        usuarioId  path      string  true  "Account id"
// @Success      200        {array}   activityResponse
// @Failure      500        {object}  errorResponse
// @Router       /api/mis-actividades/{usuarioId} [get]
func (h *ActivityHandler) ListForAccount(c echo.Context) error {
	activities, err := h.service.ListForAccount(c.Request().Context(), c.Param("usuarioId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityList(activities))
}

func enrollResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return "duplicate"
	case errors.Is(err, domain.ErrActivityFull):
		return "full"
	case errors.Is(err, domain.ErrActivityNotFound), errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	default:
		return "error"
	}
}
