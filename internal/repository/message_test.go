package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupMessageMock(t *testing.T) (*PostgresMessageRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresMessageRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestAppend_Success(t *testing.T) {
	repo, mock, cleanup := setupMessageMock(t)
	defer cleanup()

	at := time.Date(2025, 3, 7, 15, 4, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO messages (recipient, body, created_at) VALUES ($1, $2, $3)`)).
		WithArgs("alice", "hi", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), "alice", "hi", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestAppend_Error(t *testing.T) {
	repo, mock, cleanup := setupMessageMock(t)
	defer cleanup()

	at := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO messages (recipient, body, created_at) VALUES ($1, $2, $3)`)).
		WithArgs("alice", "hi", at).
		WillReturnError(errors.New("insert failed"))

	err := repo.Append(context.Background(), "alice", "hi", at)
	if err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByRecipient_Ordered(t *testing.T) {
	repo, mock, cleanup := setupMessageMock(t)
	defer cleanup()

	first := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	second := time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, recipient, body, created_at FROM messages WHERE recipient = $1 ORDER BY id`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipient", "body", "created_at"}).
			AddRow(int64(1), "alice", "hello", first).
			AddRow(int64(2), "alice", "again", second))

	messages, err := repo.ListByRecipient(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages; want 2", len(messages))
	}
	if messages[0].Body != "hello" || messages[1].Body != "again" {
		t.Errorf("messages out of order: %+v", messages)
	}
	if !messages[0].CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v; want %v", messages[0].CreatedAt, first)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByRecipient_Empty(t *testing.T) {
	repo, mock, cleanup := setupMessageMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, recipient, body, created_at FROM messages WHERE recipient = $1 ORDER BY id`)).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipient", "body", "created_at"}))

	messages, err := repo.ListByRecipient(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messages == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(messages) != 0 {
		t.Errorf("got %d messages; want 0", len(messages))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByRecipient_Error(t *testing.T) {
	repo, mock, cleanup := setupMessageMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, recipient, body, created_at FROM messages WHERE recipient = $1 ORDER BY id`)).
		WithArgs("alice").
		WillReturnError(errors.New("query failed"))

	_, err := repo.ListByRecipient(context.Background(), "alice")
	if err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
