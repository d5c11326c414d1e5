package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"chatbox-backend/internal/models"
)

type conversationService interface {
	Create(ctx context.Context, userID int64) (*models.Conversation, error)
	List(ctx context.Context, userID int64) ([]*models.Conversation, error)
	Get(ctx context.Context, id int64) (*models.Conversation, error)
}

type ConversationHandler struct {
	service conversationService
	userID  int64
}

func NewConversationHandler(service conversationService, userID int64) *ConversationHandler {
	return &ConversationHandler{service: service, userID: userID}
}

// Create handles POST /conversations. The new conversation is returned with
// its welcome message.
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	conv, err := h.service.Create(r.Context(), h.userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, conv)
}

// List handles GET /conversations.
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.service.List(r.Context(), h.userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, conversations)
}

// Get handles GET /conversations/{id}, returning the conversation with its
// full message history.
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return
	}

	conv, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, conv)
}
