package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatbox-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// AppendExchange persists a user message and its bot reply as one
// transaction. The conversation-existence check and both inserts form a
// single unit; on any failure nothing is committed. Returns pgx.ErrNoRows
// when the conversation does not exist.
func (r *MessageRepo) AppendExchange(ctx context.Context, conversationID int64, userContent, botContent string) (*models.Message, *models.Message, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var convID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM conversations WHERE id = $1`, conversationID).Scan(&convID); err != nil {
		return nil, nil, err
	}

	userMsg := models.Message{ConversationID: convID, Content: userContent, IsUser: true}
	err = tx.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, content, is_user) VALUES ($1, $2, TRUE)
		 RETURNING id, timestamp`,
		convID, userContent,
	).Scan(&userMsg.ID, &userMsg.Timestamp)
	if err != nil {
		return nil, nil, err
	}

	botMsg := models.Message{ConversationID: convID, Content: botContent, IsUser: false}
	err = tx.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, content, is_user) VALUES ($1, $2, FALSE)
		 RETURNING id, timestamp`,
		convID, botContent,
	).Scan(&botMsg.ID, &botMsg.Timestamp)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return &userMsg, &botMsg, nil
}

// ListByConversation returns the conversation's messages in timestamp order,
// oldest first. An unknown conversation id yields an empty slice, not an
// error.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID int64) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, content, is_user, timestamp
		FROM messages
		WHERE conversation_id = $1
		ORDER BY timestamp, id
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}
