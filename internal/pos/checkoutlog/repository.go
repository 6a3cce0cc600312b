package checkoutlog

import "context"

// Repository persists journal entries. Save appends; nothing is updated in place.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	// Latest returns the most recent entry for attemptID, or ErrNotFound.
	Latest(ctx context.Context, attemptID string) (*Entry, error)
}
