// Package sqlite stores the checkout journal in a local SQLite file.
//
// WAL mode is enabled on Open; the terminal writes from the checkout path
// while a reprint may be reading.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcmexdev/grocery-pos/internal/pos/checkoutlog"

	// Pure-Go driver, no CGO.
	_ "modernc.org/sqlite"
)

// The table is append-only. The newest row per attempt_id is its state.
const schema = `
CREATE TABLE IF NOT EXISTS checkout_attempts (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Idempotency key of the attempt. Several rows per key.
    attempt_id      TEXT        NOT NULL,

    status          TEXT        NOT NULL,

    -- JSON request body. Written on STARTED, NULL after.
    payload         TEXT,

    invoice_number  TEXT        NOT NULL DEFAULT '',
    error           TEXT        NOT NULL DEFAULT '',

    -- W3C ids from the active span, empty when tracing is off.
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',

    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkout_attempts_attempt_id ON checkout_attempts(attempt_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_checkout_attempts_invoice ON checkout_attempts(invoice_number);
`

var _ checkoutlog.Repository = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the journal at path and applies the schema.
//
//	journal, err := sqlite.Open("./data/checkout.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Save(ctx context.Context, entry *checkoutlog.Entry) error {
	const q = `
		INSERT INTO checkout_attempts
			(attempt_id, status, payload, invoice_number, error, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.AttemptID,
		string(entry.Status),
		nullableString(entry.Payload),
		entry.InvoiceNumber,
		entry.Error,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save attempt %q: %w", entry.AttemptID, err)
	}
	return nil
}

func (r *Repository) Latest(ctx context.Context, attemptID string) (*checkoutlog.Entry, error) {
	const q = `
		SELECT attempt_id, status, COALESCE(payload,''), invoice_number, error,
		       trace_id, span_id, updated_at
		FROM   checkout_attempts
		WHERE  attempt_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	var entry checkoutlog.Entry
	var updatedAt string
	err := r.db.QueryRowContext(ctx, q, attemptID).Scan(
		&entry.AttemptID,
		&entry.Status,
		&entry.Payload,
		&entry.InvoiceNumber,
		&entry.Error,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: attempt %q: %w", attemptID, checkoutlog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: latest for %q: %w", attemptID, err)
	}

	entry.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

// nullableString keeps payload NULL on rows other than STARTED.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
