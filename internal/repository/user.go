// Package repository provides PostgreSQL persistence for accounts and
// message logs.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/inikari/nglkawe/internal/models"
)

// pqUniqueViolation is the PostgreSQL error code for unique_violation.
const pqUniqueViolation = "23505"

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrUserNotFound is returned when no account matches the username.
	ErrUserNotFound = errors.New("user not found")
)

// PostgresUserRepository stores account credentials in PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser inserts a new account. Uniqueness is enforced by the primary key
// on users.username, so concurrent creates with the same username resolve in
// the database: exactly one succeeds and the rest return ErrDuplicateUsername.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, username, passwordHash string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)`,
		username, passwordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByUsername looks up an account by exact, case-sensitive username.
// Returns ErrUserNotFound if no such account exists.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}
