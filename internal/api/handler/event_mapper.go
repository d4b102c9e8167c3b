package handler

import (
	"github.com/campushub/event-hub/internal/core/ports"
)

// --- Request → Service input ---

func toCreateEventInput(req createEventRequest) ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Venue:       req.Venue,
	}
}

func toUpdateEventInput(req updateEventRequest) ports.UpdateEventInput {
	return ports.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Venue:       req.Venue,
	}
}
