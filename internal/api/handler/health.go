package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// Checker pings one external dependency.
type Checker func(ctx context.Context) error

// HealthHandler serves the liveness and readiness checks.
type HealthHandler struct {
	checkers map[string]Checker
	now      func() time.Time
}

// NewHealthHandler builds the checks. checkers is keyed by dependency name
// ("mongodb", "redis"); dependencies that are not configured are simply absent.
func NewHealthHandler(checkers map[string]Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers, now: time.Now}
}

type livenessResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type dependencyStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string             `json:"status"`
	Dependencies []dependencyStatus `json:"dependencies"`
}

// Liveness handles GET /api/health.
//
// @Summary      Liveness check
// @Tags         ops
// @Produce      json
// @Success      200  {object}  livenessResponse
// @Router       /api/health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, livenessResponse{
		Status:    "ok",
		Message:   "Campus Event Hub API is running",
		Timestamp: h.now().UTC(),
	})
}

// Readiness handles GET /api/health/ready. It answers 503 when any
// dependency fails its ping.
//
// @Summary      Readiness check
// @Tags         ops
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /api/health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := readinessResponse{Status: "ok", Dependencies: make([]dependencyStatus, 0, len(names))}
	code := http.StatusOK
	for _, name := range names {
		dep := dependencyStatus{Name: name, Status: "up"}
		if err := h.checkers[name](ctx); err != nil {
			dep.Status = "down"
			dep.Error = err.Error()
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		resp.Dependencies = append(resp.Dependencies, dep)
	}

	return c.JSON(code, resp)
}
