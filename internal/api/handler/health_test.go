package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/campushub/event-hub/internal/core/domain"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/api/health", "", nil)

	if err := NewHealthHandler(nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp livenessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if rec.Code != http.StatusOK || resp.Status != "ok" || resp.Timestamp.IsZero() {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name     string
		checkers map[string]Checker
		code     int
		status   string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all up", map[string]Checker{"mongodb": up, "redis": up}, http.StatusOK, "ok"},
		{"redis down", map[string]Checker{"mongodb": up, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/api/health/ready", "", nil)
			if err := NewHealthHandler(tc.checkers).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			var resp readinessResponse
			_ = json.Unmarshal(rec.Body.Bytes(), &resp)
			if rec.Code != tc.code || resp.Status != tc.status {
				t.Fatalf("expected %d/%s, got %d/%s", tc.code, tc.status, rec.Code, resp.Status)
			}
			if len(resp.Dependencies) != len(tc.checkers) {
				t.Fatalf("expected %d dependencies, got %d", len(tc.checkers), len(resp.Dependencies))
			}
		})
	}
}

type fixedActivity []domain.ActivityEntry

func (f fixedActivity) Entries() []domain.ActivityEntry { return f }

func TestActivityHandler_List(t *testing.T) {
	src := fixedActivity{{ID: "2", Method: "GET"}, {ID: "1", Method: "POST"}}
	c, rec := newContext(http.MethodGet, "/api/activity", "", nil)

	if err := NewActivityHandler(src).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp activityResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 2 || len(resp.Logs) != 2 || resp.Logs[0].ID != "2" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestIndex(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/", "", nil)
	if err := Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp indexResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Name != "Campus Event Hub API" || resp.Endpoints["events"] != "/api/events" {
		t.Fatalf("unexpected index %+v", resp)
	}
}
