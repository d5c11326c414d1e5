package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chatbox-backend/internal/events"
	"chatbox-backend/pkg/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client wraps a connection with a write lock. gorilla/websocket allows at
// most one concurrent writer per connection, and Deliver is called from
// arbitrary handler goroutines in the in-process path.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub fans persisted-message events out to websocket clients subscribed to
// a conversation. It implements events.Sink for in-process delivery and can
// additionally consume the Redis channel when one is configured.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64][]*client
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[int64][]*client),
		log:         log,
	}
}

// HandleWebSocket upgrades the request and subscribes the client to the
// conversation named by the conversation_id query parameter.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conversationID, err := strconv.ParseInt(r.URL.Query().Get("conversation_id"), 10, 64)
	if err != nil || conversationID <= 0 {
		http.Error(w, "invalid conversation_id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn}
	h.register(conversationID, cl)

	// Drain client frames until disconnect.
	go func() {
		defer h.unregister(conversationID, cl)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) register(conversationID int64, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[conversationID] = append(h.connections[conversationID], cl)
	metrics.WSConnectionsActive.Inc()
	h.log.Debug("websocket connected",
		zap.Int64("conversation_id", conversationID),
		zap.Int("total", len(h.connections[conversationID])),
	)
}

func (h *Hub) unregister(conversationID int64, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cl.conn.Close()

	clients := h.connections[conversationID]
	for i, c := range clients {
		if c == cl {
			h.connections[conversationID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.connections[conversationID]) == 0 {
		delete(h.connections, conversationID)
	}

	metrics.WSConnectionsActive.Dec()
	h.log.Debug("websocket disconnected", zap.Int64("conversation_id", conversationID))
}

// Deliver broadcasts payload to every client subscribed to the
// conversation. Safe for concurrent use from any goroutine; writes to each
// connection are serialized through the client's lock. Implements
// events.Sink.
func (h *Hub) Deliver(conversationID int64, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, cl := range h.connections[conversationID] {
		if err := cl.send(payload); err != nil {
			h.log.Debug("websocket write failed", zap.Error(err))
		}
	}
}

// Run consumes message events from Redis pub/sub and delivers them to local
// subscribers. It blocks until ctx is cancelled; run it in a goroutine.
func (h *Hub) Run(ctx context.Context, redisClient *redis.Client) {
	pubsub := redisClient.Subscribe(ctx, events.MessageChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev struct {
				ConversationID int64 `json:"conversation_id"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.log.Warn("malformed message event", zap.Error(err))
				continue
			}
			h.Deliver(ev.ConversationID, []byte(msg.Payload))
		}
	}
}
