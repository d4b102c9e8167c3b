package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/campushub/event-hub/internal/api/middleware"
	"github.com/campushub/event-hub/internal/core/domain"
)

// caller returns the identity attached by the access-control middleware. It
// fails fast with domain.ErrUnauthenticated when a route that needs an
// identity was mounted without one.
func caller(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
