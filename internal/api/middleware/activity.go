package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campushub/event-hub/internal/core/domain"
)

// ActivityRecorder receives one entry per served request.
type ActivityRecorder interface {
	Add(e domain.ActivityEntry)
}

// Activity records every request into rec once its response has been written.
// Handler errors are rendered first so the recorded status is the one the
// client received, then returned unchanged for outer middleware to log.
func Activity(rec ActivityRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil && !c.Response().Committed {
				c.Error(err)
			}

			req := c.Request()
			ua := req.UserAgent()
			if ua == "" {
				ua = "Unknown"
			}
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = req.Header.Get(echo.HeaderXRequestID)
			}

			rec.Add(domain.ActivityEntry{
				ID:        id,
				Timestamp: start.UTC(),
				Method:    req.Method,
				Path:      req.URL.Path,
				Status:    c.Response().Status,
				Duration:  strconv.FormatInt(time.Since(start).Milliseconds(), 10) + "ms",
				UserAgent: ua,
			})
			return err
		}
	}
}
