package handler

// createEventRequest is the body of POST /api/events. Required-field checks
// happen in the service so every missing field is reported together.
type createEventRequest struct {
	Title       string `json:"title"       example:"Orientation"`
	Description string `json:"description" example:"Welcome session"`
	Date        string `json:"date"        example:"2025-09-01"`
	Venue       string `json:"venue"       example:"Hall A"`
}

// updateEventRequest is the body of PUT /api/events/:id. Absent or empty
// fields leave the stored value unchanged.
type updateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"        validate:"omitempty,isodate"`
	Venue       *string `json:"venue,omitempty"`
}
