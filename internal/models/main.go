// Package models defines the core data structures for accounts and messages.
package models

import "time"

// User represents a registered account.
type User struct {
	// Username is the unique login name chosen by the user.
	Username string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
}

// Message is a single entry in a recipient's message log.
type Message struct {
	// ID orders the message within the log.
	ID int64
	// Recipient is the username the message was posted to.
	Recipient string
	// Body is the message text.
	Body string
	// CreatedAt is the server-assigned receipt time.
	CreatedAt time.Time
}

// DisplayMessage is a message prepared for rendering.
type DisplayMessage struct {
	// Body is the message text.
	Body string
	// SentAt is the receipt time formatted as DD/MM hh:mm AM/PM.
	SentAt string
}
