package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"chatbox-backend/internal/models"
)

type messageService interface {
	Post(ctx context.Context, conversationID int64, content string) (*models.Message, error)
	List(ctx context.Context, conversationID int64) ([]models.Message, error)
}

type MessageHandler struct {
	service messageService
}

func NewMessageHandler(service messageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Post handles POST /messages. The response body is the synthesized bot
// reply, not the user's own message.
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req models.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.ConversationID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "conversation_id is required", r))
		return
	}

	botMsg, err := h.service.Post(r.Context(), req.ConversationID, req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, botMsg)
}

// List handles GET /messages?conversation_id=. An unknown conversation
// yields an empty list.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	conversationID, err := strconv.ParseInt(r.URL.Query().Get("conversation_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation_id", r))
		return
	}

	messages, err := h.service.List(r.Context(), conversationID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
