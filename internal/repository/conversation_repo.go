package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatbox-backend/internal/models"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// CreateWithWelcome inserts a conversation and its welcome message as one
// transaction. Returns pgx.ErrNoRows when the owning user does not exist, so
// a reader can never observe a conversation without its seed message.
func (r *ConversationRepo) CreateWithWelcome(ctx context.Context, userID int64, welcome string) (*models.Conversation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ownerID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, userID).Scan(&ownerID); err != nil {
		return nil, err
	}

	conv := &models.Conversation{UserID: ownerID}
	err = tx.QueryRow(ctx,
		`INSERT INTO conversations (user_id) VALUES ($1) RETURNING id, created_at`,
		ownerID,
	).Scan(&conv.ID, &conv.CreatedAt)
	if err != nil {
		return nil, err
	}

	msg := models.Message{ConversationID: conv.ID, Content: welcome, IsUser: false}
	err = tx.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, content, is_user) VALUES ($1, $2, FALSE)
		 RETURNING id, timestamp`,
		conv.ID, welcome,
	).Scan(&msg.ID, &msg.Timestamp)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	conv.Messages = []models.Message{msg}
	return conv, nil
}

// ListByUser returns the user's conversations with their most recent message
// as a preview. Ties on timestamp break on the higher message id so the
// preview is deterministic.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.user_id, c.created_at,
		       m.id, m.conversation_id, m.content, m.is_user, m.timestamp
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, conversation_id, content, is_user, timestamp
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY timestamp DESC, id DESC
			LIMIT 1
		) m ON TRUE
		WHERE c.user_id = $1
		ORDER BY c.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := make([]*models.Conversation, 0)
	for rows.Next() {
		conv := &models.Conversation{}
		var (
			msgID        *int64
			msgConvID    *int64
			msgContent   *string
			msgIsUser    *bool
			msgTimestamp *time.Time
		)
		if err := rows.Scan(
			&conv.ID, &conv.UserID, &conv.CreatedAt,
			&msgID, &msgConvID, &msgContent, &msgIsUser, &msgTimestamp,
		); err != nil {
			return nil, err
		}
		if msgID != nil {
			conv.LastMessage = &models.Message{
				ID:             *msgID,
				ConversationID: *msgConvID,
				Content:        *msgContent,
				IsUser:         *msgIsUser,
				Timestamp:      *msgTimestamp,
			}
		}
		conversations = append(conversations, conv)
	}

	return conversations, rows.Err()
}

// GetWithMessages returns one conversation and its full message history in
// timestamp order. Returns pgx.ErrNoRows when the id does not exist.
func (r *ConversationRepo) GetWithMessages(ctx context.Context, id int64) (*models.Conversation, error) {
	conv := &models.Conversation{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, created_at FROM conversations WHERE id = $1`, id,
	).Scan(&conv.ID, &conv.UserID, &conv.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, content, is_user, timestamp
		FROM messages
		WHERE conversation_id = $1
		ORDER BY timestamp, id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conv.Messages, err = scanMessages(rows)
	return conv, err
}

func scanMessages(rows pgx.Rows) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Content, &m.IsUser, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
