package httpapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means the backend wants a login first.
	ErrNotAuthenticated = errors.New("httpapi: not authenticated")
	ErrLoginRejected    = errors.New("httpapi: login rejected")
)

// APIError is an {"error": "..."} answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("httpapi: status %d: %s", e.Status, e.Message)
}

// ServerMessage is the backend's text, meant to be shown to the cashier.
func (e *APIError) ServerMessage() string {
	return e.Message
}
