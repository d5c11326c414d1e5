package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"chatbox-backend/internal/models"
	"chatbox-backend/pkg/metrics"
)

type conversationStore interface {
	CreateWithWelcome(ctx context.Context, userID int64, welcome string) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Conversation, error)
	GetWithMessages(ctx context.Context, id int64) (*models.Conversation, error)
}

type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// ConversationService implements the conversation store operations: create
// with a welcome message, list with last-message previews, and fetch with
// full history.
type ConversationService struct {
	conversations conversationStore
	users         userStore
	log           *zap.Logger
}

func NewConversationService(conversations conversationStore, users userStore, log *zap.Logger) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		users:         users,
		log:           log,
	}
}

// Create opens a new conversation for userID. The conversation and its
// welcome message are persisted atomically, so a new conversation is never
// visible without at least one message.
func (s *ConversationService) Create(ctx context.Context, userID int64) (*models.Conversation, error) {
	conv, err := s.conversations.CreateWithWelcome(ctx, userID, WelcomeMessage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "User not found"}
		}
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	metrics.ConversationsCreatedTotal.Inc()
	s.log.Info("conversation created",
		zap.Int64("conversation_id", conv.ID),
		zap.Int64("user_id", conv.UserID),
	)
	return conv, nil
}

// List returns the user's conversations with previews. Fails with NotFound
// when the user does not exist.
func (s *ConversationService) List(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "User not found"}
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	conversations, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

// Get returns one conversation with its messages ordered oldest first.
func (s *ConversationService) Get(ctx context.Context, id int64) (*models.Conversation, error) {
	conv, err := s.conversations.GetWithMessages(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Conversation not found"}
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}
