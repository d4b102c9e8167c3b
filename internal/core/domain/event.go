package domain

import (
	"strings"
	"time"
)

// Event is a catalog entry students can register for.
type Event struct {
	ID          string     `json:"eventId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Venue       string     `json:"venue"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// EventPatch carries the fields of a partial update. Nil means "leave unchanged".
type EventPatch struct {
	Title       *string
	Description *string
	Date        *string
	Venue       *string
}

// Empty reports whether the patch changes no field.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.Venue == nil
}

// Apply merges the patch into e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
}

// Accepted layouts for Event.Date. The calendar form is what clients send;
// full timestamps are tolerated.
var eventDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ValidEventDate reports whether s is an ISO 8601 date or timestamp.
func ValidEventDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// ValidateNewEvent checks the fields required for every stored event and
// returns an InvalidInputError naming each offending field, or nil.
func ValidateNewEvent(e *Event) error {
	var problems []FieldProblem
	required := []struct {
		field string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"date", e.Date},
		{"venue", e.Venue},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, FieldProblem{Field: r.field, Message: "is required"})
		}
	}
	if strings.TrimSpace(e.Date) != "" && !ValidEventDate(e.Date) {
		problems = append(problems, FieldProblem{Field: "date", Message: "must be an ISO 8601 date"})
	}
	if len(problems) > 0 {
		return &InvalidInputError{Problems: problems}
	}
	return nil
}
