package domain

import "time"

// ActivityEntry is one served request as shown by the activity feed.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Duration  string    `json:"duration"`
	UserAgent string    `json:"userAgent"`
}
