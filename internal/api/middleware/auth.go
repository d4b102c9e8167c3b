package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campushub/event-hub/internal/api/metrics"
	"github.com/campushub/event-hub/internal/core/domain"
	"github.com/campushub/event-hub/internal/core/ports"
)

const identityKey = "identity"

// RequireIdentity rejects the request with 401 unless it carries a valid
// bearer token. On success the caller's identity is attached to the context.
func RequireIdentity(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("required").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: No token provided")
			}

			id, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("required").Inc()
				c.Logger().Debugf("token verification failed: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid token")
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// AttachIdentity attaches the caller's identity when a valid bearer token is
// present and otherwise lets the request through anonymously.
func AttachIdentity(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			token, ok := bearerToken(header)
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("optional").Inc()
				return next(c)
			}
			id, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("optional").Inc()
				return next(c)
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// SetIdentity attaches id to the request context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity attached by RequireIdentity or
// AttachIdentity. ok is false for anonymous requests.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	if !ok || id.UserID == "" {
		return domain.Identity{}, false
	}
	return id, true
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
