package handler

// registerRequest is the body of POST /api/registrations. A missing eventId is
// reported by the service as invalid input.
type registerRequest struct {
	EventID string `json:"eventId" example:"665f1c2ab4d1e2f3a4b5c6d7"`
}
