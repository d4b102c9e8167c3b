package handler

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campushub/event-hub/internal/api/middleware"
	"github.com/campushub/event-hub/internal/core/domain"
)

var (
	admin   = domain.Identity{UserID: "admin-1", Email: "admin@campus.edu", Role: domain.RoleAdmin}
	student = domain.Identity{UserID: "student-1", Email: "sam@campus.edu", Role: domain.RoleStudent}
)

// newContext builds an echo context for a JSON request. A nil caller leaves
// the request anonymous.
func newContext(method, target, body string, caller *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		middleware.SetIdentity(c, *caller)
	}
	return c, rec
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Fatalf("expected %d, got %d", want, he.Code)
	}
}
