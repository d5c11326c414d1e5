package models

import (
	"time"
)

// Conversation is an ordered thread of messages belonging to one user.
// Conversations are created on demand and never updated or deleted; the
// only mutation after creation is appending messages.
type Conversation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// LastMessage is populated by list queries as a preview.
	LastMessage *Message `json:"last_message,omitempty"`

	// Messages is populated when a single conversation is fetched with
	// its full history. A fetched conversation always carries the key,
	// even when the history is empty.
	Messages []Message `json:"messages"`
}
