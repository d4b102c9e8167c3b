package domain

import "time"

// Registration records that a user signed up for an event.
// At most one exists per (UserID, EventID).
type Registration struct {
	ID           string    `json:"registrationId"`
	UserID       string    `json:"userId"`
	EventID      string    `json:"eventId"`
	RegisteredAt time.Time `json:"registeredAt"`
}
