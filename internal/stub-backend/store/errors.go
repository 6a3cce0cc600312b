package store

import (
	"errors"
	"fmt"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// ErrNoItems is returned for a request without lines.
var ErrNoItems error = &RejectionError{Message: "No items in cart"}

// RejectionError is a business-rule failure whose text is returned to the
// terminal as-is.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

func productNotFound(id int64) error {
	return &RejectionError{Message: fmt.Sprintf("Product not found: %d", id)}
}

func insufficientStock(name string) error {
	return &RejectionError{Message: fmt.Sprintf("Insufficient stock for %s", name)}
}

func rejectf(format string, args ...any) error {
	return &RejectionError{Message: fmt.Sprintf(format, args...)}
}
