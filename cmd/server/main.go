package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chatbox-backend/internal/config"
	"chatbox-backend/internal/database"
	"chatbox-backend/internal/events"
	"chatbox-backend/internal/handlers"
	"chatbox-backend/internal/repository"
	"chatbox-backend/internal/router"
	"chatbox-backend/internal/services"
	"chatbox-backend/internal/websocket"
	"chatbox-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting chatbox backend", zap.String("env", cfg.Env))

	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()
	log.Info("postgres connected")

	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}
	log.Info("database migrations applied")

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("redis connected")
	}

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	conversationRepo := repository.NewConversationRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)

	// Bootstrap the single-tenant account; the resolved id is wired into the
	// handlers as configuration.
	userSvc := services.NewUserService(userRepo, log)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	seedUser, err := userSvc.Bootstrap(ctx, cfg.SeedUserName)
	cancel()
	if err != nil {
		log.Fatal("user seeding failed", zap.Error(err))
	}

	// Live-update fan-out
	wsHub := websocket.NewHub(log)
	publisher := events.NewPublisher(redisClient, wsHub, log)

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	if redisClient != nil {
		go wsHub.Run(hubCtx, redisClient)
	}

	// Services
	replies, err := services.NewReplyCatalog(services.DefaultReplies(), nil)
	if err != nil {
		log.Fatal("reply catalog initialization failed", zap.Error(err))
	}
	conversationSvc := services.NewConversationService(conversationRepo, userRepo, log)
	messageSvc := services.NewMessageService(messageRepo, replies, publisher, log)

	// Handlers
	userHandler := handlers.NewUserHandler(userSvc, seedUser.ID)
	conversationHandler := handlers.NewConversationHandler(conversationSvc, seedUser.ID)
	messageHandler := handlers.NewMessageHandler(messageSvc)

	r := router.New(log, userHandler, conversationHandler, messageHandler, wsHub, cfg.FrontendURL, cfg.MessageRateLimit)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		stopHub()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}
