package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/inikari/nglkawe/internal/models"
)

// PostgresMessageRepository stores per-recipient message logs in PostgreSQL.
// The log is the set of rows sharing a recipient, ordered by id, so appending
// to a log that does not exist yet and appending to an existing one are the
// same single INSERT.
type PostgresMessageRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository with
// the given database connection.
func NewPostgresMessageRepository(db *sql.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{DB: db}
}

// Append adds one entry to the recipient's log. Concurrent appends to the
// same recipient are serialized by the database; each gets its own id.
func (r *PostgresMessageRepository) Append(ctx context.Context, recipient, body string, at time.Time) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO messages (recipient, body, created_at) VALUES ($1, $2, $3)`,
		recipient, body, at,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListByRecipient returns the recipient's log in append order. A recipient
// with no messages yields an empty slice, not an error.
func (r *PostgresMessageRepository) ListByRecipient(ctx context.Context, recipient string) ([]models.Message, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, recipient, body, created_at FROM messages WHERE recipient = $1 ORDER BY id`,
		recipient,
	)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Recipient, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}
