package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/event-hub/internal/core/domain"
	"github.com/campushub/event-hub/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, every call returns this error
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{byID: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) List(_ context.Context) ([]*domain.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Event, 0, len(r.byID))
	for _, e := range r.byID {
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	clone := *e
	clone.ID = fmt.Sprintf("E%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEventRepo) Update(_ context.Context, id string, patch domain.EventPatch, updatedAt time.Time) (*domain.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	patch.Apply(e)
	e.UpdatedAt = &updatedAt
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	discardLogger = zerolog.Nop()
	admin         = domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	student       = domain.Identity{UserID: "student-1", Role: domain.RoleStudent}
)

func orientation() ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       "Orientation",
		Description: "Welcome session",
		Date:        "2025-09-01",
		Venue:       "Hall A",
	}
}

func ptr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Create / Get
// ---------------------------------------------------------------------------

func TestEventService_Create_RoundTrip(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, discardLogger)

	created, err := svc.Create(context.Background(), admin, orientation())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned event id")
	}
	if created.CreatedBy != admin.UserID {
		t.Errorf("expected createdBy %q, got %q", admin.UserID, created.CreatedBy)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected createdAt to be stamped")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if *got != *created {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, created)
	}
}

func TestEventService_Create_MissingFieldsCreatesNothing(t *testing.T) {
	cases := map[string]func(in *ports.CreateEventInput){
		"title":       func(in *ports.CreateEventInput) { in.Title = "" },
		"description": func(in *ports.CreateEventInput) { in.Description = "   " },
		"date":        func(in *ports.CreateEventInput) { in.Date = "" },
		"venue":       func(in *ports.CreateEventInput) { in.Venue = "" },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			repo := newStubEventRepo()
			svc := NewEventService(repo, discardLogger)

			in := orientation()
			mutate(&in)
			_, err := svc.Create(context.Background(), admin, in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var ie *domain.InvalidInputError
			if !errors.As(err, &ie) || ie.Problems[0].Field != field {
				t.Errorf("expected %s to be named, got %v", field, err)
			}
			if len(repo.byID) != 0 {
				t.Errorf("expected no record created, got %d", len(repo.byID))
			}
		})
	}
}

func TestEventService_Create_RequiresCaller(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), discardLogger)
	_, err := svc.Create(context.Background(), domain.Identity{}, orientation())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestEventService_Get_NotFound(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), discardLogger)
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestEventService_List_OrderedByDate(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, discardLogger)
	for _, d := range []string{"2025-12-01", "2025-01-15", "2025-06-30"} {
		in := orientation()
		in.Date = d
		if _, err := svc.Create(context.Background(), admin, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	events, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i-1].Date > events[i].Date {
			t.Errorf("events not ascending by date: %s before %s", events[i-1].Date, events[i].Date)
		}
	}
}

func TestEventService_List_StoreFailure(t *testing.T) {
	repo := newStubEventRepo()
	repo.err = errors.New("server selection timeout")
	svc := NewEventService(repo, discardLogger)

	_, err := svc.List(context.Background())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !errors.Is(err, repo.err) {
		t.Error("expected the driver error to stay in the chain")
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestEventService_Update_PartialMerge(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), admin, orientation())

	updated, err := svc.Update(context.Background(), admin, created.ID, ports.UpdateEventInput{Venue: ptr("Hall B")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Venue != "Hall B" {
		t.Errorf("expected venue Hall B, got %q", updated.Venue)
	}
	if updated.Title != "Orientation" || updated.Description != "Welcome session" || updated.Date != "2025-09-01" {
		t.Errorf("unspecified fields changed: %+v", updated)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected updatedAt to be stamped")
	}
}

func TestEventService_Update_EmptyStringsAreIgnored(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), admin, orientation())

	updated, err := svc.Update(context.Background(), admin, created.ID, ports.UpdateEventInput{Title: ptr(""), Venue: ptr("  ")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Orientation" || updated.Venue != "Hall A" {
		t.Errorf("blank fields should not overwrite: %+v", updated)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected updatedAt to be stamped even without changes")
	}
}

func TestEventService_Update_NotFound(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), discardLogger)
	_, err := svc.Update(context.Background(), admin, "missing", ports.UpdateEventInput{Venue: ptr("Hall B")})
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_Update_BadDate(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), admin, orientation())

	_, err := svc.Update(context.Background(), admin, created.ID, ports.UpdateEventInput{Date: ptr("soon")})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.byID[created.ID].Date != "2025-09-01" {
		t.Error("stored date must be unchanged")
	}
}

func TestEventService_Update_AnyAuthenticatedCaller(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), admin, orientation())

	if _, err := svc.Update(context.Background(), student, created.ID, ports.UpdateEventInput{Title: ptr("Renamed")}); err != nil {
		t.Fatalf("expected non-owner update to succeed, got %v", err)
	}
}

func TestEventService_DeleteThenGet(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), admin, orientation())

	if err := svc.Delete(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), admin, created.ID); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected second delete to report ErrEventNotFound, got %v", err)
	}
}
