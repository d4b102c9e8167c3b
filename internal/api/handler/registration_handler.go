package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/event-hub/internal/api/metrics"
	"github.com/campushub/event-hub/internal/core/domain"
	"github.com/campushub/event-hub/internal/core/ports"
)

// RegistrationHandler handles HTTP requests for event registrations. Every
// route requires an identity.
type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// ListByEvent handles GET /api/registrations/event/:eventId.
//
// @Summary      List registrations for an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        eventId  path      string  true  "Event ID"
// @Success      200      {array}   domain.Registration
// @Failure      401      {object}  errorResponse
// @Router       /api/registrations/event/{eventId} [get]
func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	regs, err := h.service.ListByEvent(c.Request().Context(), id, c.Param("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regs)
}

// ListByUser handles GET /api/registrations/user/:userId. Callers may only
// list their own registrations.
//
// @Summary      List a user's registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {array}   domain.Registration
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/registrations/user/{userId} [get]
func (h *RegistrationHandler) ListByUser(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	regs, err := h.service.ListByUser(c.Request().Context(), id, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regs)
}

// ListMine handles GET /api/registrations/my.
//
// @Summary      List my registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Registration
// @Failure      401  {object}  errorResponse
// @Router       /api/registrations/my [get]
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	regs, err := h.service.ListMine(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regs)
}

// Register handles POST /api/registrations.
//
// @Summary      Register for an event
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Event to register for"
// @Success      201   {object}  domain.Registration
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/registrations [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	reg, err := h.service.Register(c.Request().Context(), id, req.EventID)
	metrics.RegistrationAttemptsTotal.WithLabelValues(registrationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reg)
}

// Unregister handles DELETE /api/registrations/:registrationId.
//
// @Summary      Cancel a registration
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        registrationId  path      string  true  "Registration ID"
// @Success      200             {object}  messageResponse
// @Failure      401             {object}  errorResponse
// @Failure      403             {object}  errorResponse
// @Failure      404             {object}  errorResponse
// @Router       /api/registrations/{registrationId} [delete]
func (h *RegistrationHandler) Unregister(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.Unregister(c.Request().Context(), id, c.Param("registrationId")); err != nil {
		return err
	}

	metrics.UnregistrationsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully unregistered from event"})
}

func registrationResult(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "conflict"
	case errors.Is(err, domain.ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
