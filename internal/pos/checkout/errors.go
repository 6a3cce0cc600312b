package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart            = errors.New("checkout: cart is empty")
	ErrSubmitInProgress     = errors.New("checkout: submission already in progress")
	ErrInvalidPaymentMethod = errors.New("checkout: invalid payment method")
)

// ServerError is a rejection reported by the invoicing backend. Message is
// shown to the cashier verbatim.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "checkout: server rejected: " + e.Message
}

// TransportError covers everything that kept a response from being read:
// network failures, timeouts, unexpected statuses, undecodable bodies.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("checkout: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// serverMessager is implemented by adapter errors that carry a message
// written by the backend for the user.
type serverMessager interface {
	ServerMessage() string
}

func classify(err error) error {
	var sm serverMessager
	if errors.As(err, &sm) {
		return &ServerError{Message: sm.ServerMessage()}
	}
	return &TransportError{Err: err}
}
