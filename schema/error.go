package schema

// ErrorResponse is the structured error body every endpoint returns on a
// domain failure. Message is user-facing.
type ErrorResponse struct {
	Message string `json:"message"`
}
