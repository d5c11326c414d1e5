package models

import (
	"time"
)

// MaxMessageLength matches the VARCHAR(500) bound on messages.content.
const MaxMessageLength = 500

// Message is one unit of text in a conversation. IsUser distinguishes
// human-authored messages from synthesized bot replies.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Content        string    `json:"content"`
	IsUser         bool      `json:"is_user"`
	Timestamp      time.Time `json:"timestamp"`
}

// PostMessageRequest is the payload for POST /messages.
type PostMessageRequest struct {
	Content        string `json:"content"`
	ConversationID int64  `json:"conversation_id"`
}
