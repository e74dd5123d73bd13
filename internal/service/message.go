package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inikari/nglkawe/internal/models"
)

// ErrEmptyMessage is returned when a posted message is blank.
var ErrEmptyMessage = errors.New("message must not be empty")

// displayLayout renders timestamps as DD/MM hh:mm AM/PM.
const displayLayout = "02/01 03:04 PM"

// MessageRepository defines the persistence operations required by the
// message service.
type MessageRepository interface {
	// Append adds one entry to the recipient's log, creating the log on
	// first use. Must be atomic under concurrent appends.
	Append(ctx context.Context, recipient, body string, at time.Time) error
	// ListByRecipient returns the recipient's log in append order.
	ListByRecipient(ctx context.Context, recipient string) ([]models.Message, error)
}

// MessageService implements posting to and reading per-user message logs.
type MessageService struct {
	repo MessageRepository
}

// NewMessageService constructs a new MessageService.
func NewMessageService(repo MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

// Post stamps the current server time and appends the message to the
// recipient's log. The recipient is not required to be a registered
// account; messages to unknown names are stored and simply never read.
func (s *MessageService) Post(ctx context.Context, recipient, body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyMessage
	}
	return s.repo.Append(ctx, recipient, body, time.Now().UTC())
}

// Messages returns the user's log with timestamps formatted for display.
// A user with no messages gets an empty slice.
func (s *MessageService) Messages(ctx context.Context, username string) ([]models.DisplayMessage, error) {
	raw, err := s.repo.ListByRecipient(ctx, username)
	if err != nil {
		return nil, err
	}
	messages := make([]models.DisplayMessage, 0, len(raw))
	for _, m := range raw {
		messages = append(messages, models.DisplayMessage{
			Body:   m.Body,
			SentAt: m.CreatedAt.Format(displayLayout),
		})
	}
	return messages, nil
}
