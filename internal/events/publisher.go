// Package events fans out persisted-message notifications to live
// subscribers, either through Redis pub/sub or directly in-process.
package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chatbox-backend/internal/models"
)

// MessageChannel is the Redis pub/sub channel for message events.
const MessageChannel = "chatbox:messages"

// TypeMessageCreated marks a newly persisted message.
const TypeMessageCreated = "message.created"

// Event is the wire format delivered to websocket subscribers.
type Event struct {
	Type           string          `json:"type"`
	ConversationID int64           `json:"conversation_id"`
	Message        *models.Message `json:"message,omitempty"`
}

// Sink receives events locally when Redis is not configured. The websocket
// hub implements this.
type Sink interface {
	Deliver(conversationID int64, payload []byte)
}

// Publisher emits events after the storage transaction has committed.
// Publishing is best-effort: a failed publish is logged, never surfaced to
// the HTTP caller.
type Publisher struct {
	redis *redis.Client
	local Sink
	log   *zap.Logger
}

// NewPublisher builds a publisher. redisClient may be nil, in which case
// events go straight to the local sink.
func NewPublisher(redisClient *redis.Client, local Sink, log *zap.Logger) *Publisher {
	return &Publisher{redis: redisClient, local: local, log: log}
}

// MessageCreated publishes a message.created event.
func (p *Publisher) MessageCreated(ctx context.Context, msg *models.Message) {
	ev := Event{Type: TypeMessageCreated, ConversationID: msg.ConversationID, Message: msg}
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("failed to encode message event", zap.Error(err))
		return
	}

	if p.redis != nil {
		if err := p.redis.Publish(ctx, MessageChannel, payload).Err(); err != nil {
			p.log.Warn("failed to publish message event", zap.Error(err))
		}
		return
	}

	if p.local != nil {
		p.local.Deliver(ev.ConversationID, payload)
	}
}
