package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campushub/event-hub/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
		{"wrapped unauthenticated", fmt.Errorf("%w: token expired", domain.ErrUnauthenticated), http.StatusUnauthorized, "Unauthorized"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden with reason", &domain.ForbiddenError{Reason: "cannot delete other users' registrations"}, http.StatusForbidden,
			"Forbidden: cannot delete other users' registrations"},
		{"invalid input", &domain.InvalidInputError{Problems: []domain.FieldProblem{
			{Field: "title", Message: "is required"}, {Field: "venue", Message: "is required"},
		}}, http.StatusBadRequest, "title is required; venue is required"},
		{"event not found", domain.ErrEventNotFound, http.StatusNotFound, "Event not found"},
		{"registration not found", domain.ErrRegistrationNotFound, http.StatusNotFound, "Registration not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"already registered", domain.ErrAlreadyRegistered, http.StatusConflict, "Already registered for this event"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "User already exists"},
		{"store unavailable", &domain.StoreError{Op: "list events", Err: errors.New("connection reset")},
			http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
		{"echo http error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, "Endpoint not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			want := `{"error":` + fmt.Sprintf("%q", tc.msg) + `}`
			if got := strings.TrimSpace(rec.Body.String()); got != want {
				t.Fatalf("expected body %s, got %s", want, got)
			}
		})
	}
}

func TestHTTPErrorHandler_LogsUnexpectedErrors(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/events", nil), httptest.NewRecorder())
	NewHTTPErrorHandler(log)(&domain.StoreError{Op: "insert event", Err: errors.New("no primary")}, c)

	if !strings.Contains(buf.String(), "no primary") || !strings.Contains(buf.String(), "unhandled error") {
		t.Fatalf("expected the cause to be logged, got %q", buf.String())
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("committed response was overwritten: %d %q", rec.Code, rec.Body.String())
	}
}
