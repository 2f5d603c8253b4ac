// Package response provides utilities for sending consistent HTTP responses.
// Handlers never write to the ResponseWriter directly; everything goes
// through RespondJSON so status codes and content types stay uniform.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope returned by every failing endpoint.
// Details optionally carries the underlying cause or per-field messages.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// A nil payload writes the status code only, which is how 204 responses
// are produced. Encoding failures are logged, not propagated: the status
// line has already been written at that point.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends an ErrorResponse with the given status code. The
// message is the stable, user-facing description; details carry context
// such as the wrapped error text.
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
