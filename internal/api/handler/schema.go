package handler

// errorResponse documents the error envelope rendered by the HTTP error handler.
type errorResponse struct {
	Error string `json:"error" example:"Event not found"`
}

// messageResponse acknowledges a delete.
type messageResponse struct {
	Message string `json:"message" example:"Event deleted successfully"`
}
