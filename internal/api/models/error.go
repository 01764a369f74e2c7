package models

import (
	"encoding/json"
	"net/http"
)

// Error is the body of every non-2xx response.
type Error struct {
	Error string `json:"error"`
}

// NewError creates an error body carrying message.
func NewError(message string) *Error {
	return &Error{Error: message}
}

// Write writes the error as JSON with the given status code.
func (e *Error) Write(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(e)
}
