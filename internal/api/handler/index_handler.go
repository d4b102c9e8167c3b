package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Version is reported by the service index. Overridden at build time with
// -ldflags "-X github.com/campushub/event-hub/internal/api/handler.Version=...".
var Version = "1.0.0"

type indexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Index handles GET / with a short map of the public surface.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, indexResponse{
		Name:    "Campus Event Hub API",
		Version: Version,
		Endpoints: map[string]string{
			"health":        "/api/health",
			"readiness":     "/api/health/ready",
			"activity":      "/api/activity",
			"auth":          "/api/auth",
			"events":        "/api/events",
			"registrations": "/api/registrations",
			"metrics":       "/metrics",
			"docs":          "/swagger/index.html",
		},
	})
}
