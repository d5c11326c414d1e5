package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatbox-backend/internal/models"
)

type recordingSink struct {
	conversationID int64
	payload        []byte
	calls          int
}

func (s *recordingSink) Deliver(conversationID int64, payload []byte) {
	s.conversationID = conversationID
	s.payload = payload
	s.calls++
}

func TestMessageCreated_DeliversLocallyWithoutRedis(t *testing.T) {
	sink := &recordingSink{}
	p := NewPublisher(nil, sink, zap.NewNop())

	msg := &models.Message{ID: 3, ConversationID: 7, Content: "hello", IsUser: true, Timestamp: time.Now().UTC()}
	p.MessageCreated(context.Background(), msg)

	require.Equal(t, 1, sink.calls)
	assert.Equal(t, int64(7), sink.conversationID)

	var ev Event
	require.NoError(t, json.Unmarshal(sink.payload, &ev))
	assert.Equal(t, TypeMessageCreated, ev.Type)
	assert.Equal(t, int64(7), ev.ConversationID)
	require.NotNil(t, ev.Message)
	assert.Equal(t, "hello", ev.Message.Content)
}

func TestMessageCreated_NilSinkIsSafe(t *testing.T) {
	p := NewPublisher(nil, nil, zap.NewNop())
	p.MessageCreated(context.Background(), &models.Message{ID: 1, ConversationID: 1})
}
