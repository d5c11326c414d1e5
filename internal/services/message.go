package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"chatbox-backend/internal/models"
	"chatbox-backend/pkg/metrics"
)

type messageStore interface {
	AppendExchange(ctx context.Context, conversationID int64, userContent, botContent string) (userMsg, botMsg *models.Message, err error)
	ListByConversation(ctx context.Context, conversationID int64) ([]models.Message, error)
}

type eventPublisher interface {
	MessageCreated(ctx context.Context, msg *models.Message)
}

// MessageService implements the message exchange: every posted user message
// is paired with a synthesized bot reply in one transaction.
type MessageService struct {
	messages messageStore
	replies  *ReplyCatalog
	events   eventPublisher
	log      *zap.Logger
}

func NewMessageService(messages messageStore, replies *ReplyCatalog, events eventPublisher, log *zap.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		replies:  replies,
		events:   events,
		log:      log,
	}
}

// Post appends content as a user message, synthesizes a bot reply, and
// persists both atomically. The bot message is returned. Fails with
// NotFound when the conversation does not exist; once Post returns nil
// error, the user message always has its paired reply.
func (s *MessageService) Post(ctx context.Context, conversationID int64, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Message: "Message content is required"}
	}
	if len(content) > models.MaxMessageLength {
		return nil, &ValidationError{Message: fmt.Sprintf("Message content exceeds %d characters", models.MaxMessageLength)}
	}

	reply := s.replies.Choose()

	userMsg, botMsg, err := s.messages.AppendExchange(ctx, conversationID, content, reply)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Conversation not found"}
		}
		return nil, fmt.Errorf("append exchange: %w", err)
	}

	metrics.MessageExchangesTotal.Inc()
	s.log.Info("message exchange persisted",
		zap.Int64("conversation_id", conversationID),
		zap.Int64("user_message_id", userMsg.ID),
		zap.Int64("bot_message_id", botMsg.ID),
	)

	if s.events != nil {
		s.events.MessageCreated(ctx, userMsg)
		s.events.MessageCreated(ctx, botMsg)
	}

	return botMsg, nil
}

// List returns the conversation's messages ordered by timestamp ascending.
// An unknown conversation yields an empty list, not an error.
func (s *MessageService) List(ctx context.Context, conversationID int64) ([]models.Message, error) {
	messages, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
