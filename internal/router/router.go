package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"chatbox-backend/internal/handlers"
	"chatbox-backend/internal/middleware"
	"chatbox-backend/internal/websocket"
)

func New(
	log *zap.Logger,
	userHandler *handlers.UserHandler,
	conversationHandler *handlers.ConversationHandler,
	messageHandler *handlers.MessageHandler,
	wsHub *websocket.Hub,
	frontendURL string,
	messageRateLimit int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/users/me", userHandler.GetMe)

	r.Route("/conversations", func(r chi.Router) {
		r.Get("/", conversationHandler.List)
		r.Post("/", conversationHandler.Create)
		r.Get("/{id}", conversationHandler.Get)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Get("/", messageHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(messageRateLimit, time.Minute))
			r.Post("/", messageHandler.Post)
		})
	})

	r.Get("/ws", wsHub.HandleWebSocket)

	return r
}
