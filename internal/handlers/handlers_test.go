package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"chatbox-backend/internal/models"
	"chatbox-backend/internal/services"
)

type fakeUserService struct {
	user *models.User
	err  error
}

func (f *fakeUserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return f.user, f.err
}

type fakeConversationService struct {
	conv *models.Conversation
	list []*models.Conversation
	err  error
}

func (f *fakeConversationService) Create(ctx context.Context, userID int64) (*models.Conversation, error) {
	return f.conv, f.err
}

func (f *fakeConversationService) List(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	return f.list, f.err
}

func (f *fakeConversationService) Get(ctx context.Context, id int64) (*models.Conversation, error) {
	return f.conv, f.err
}

type fakeMessageService struct {
	botMsg *models.Message
	list   []models.Message
	err    error

	gotConversationID int64
	gotContent        string
}

func (f *fakeMessageService) Post(ctx context.Context, conversationID int64, content string) (*models.Message, error) {
	f.gotConversationID = conversationID
	f.gotContent = content
	return f.botMsg, f.err
}

func (f *fakeMessageService) List(ctx context.Context, conversationID int64) ([]models.Message, error) {
	f.gotConversationID = conversationID
	return f.list, f.err
}

// ─── User Handler Tests ───

func TestGetMe(t *testing.T) {
	h := NewUserHandler(&fakeUserService{user: &models.User{ID: 1, Name: "Alice"}}, 1)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rr := httptest.NewRecorder()
	h.GetMe(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var user models.User
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if user.ID != 1 || user.Name != "Alice" {
		t.Errorf("Unexpected user payload: %+v", user)
	}
}

func TestGetMe_NoUser(t *testing.T) {
	h := NewUserHandler(&fakeUserService{err: &services.NotFoundError{Message: "User not found"}}, 1)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rr := httptest.NewRecorder()
	h.GetMe(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected code NOT_FOUND, got %q", resp.Error.Code)
	}
}

func TestGetMe_StorageFailure(t *testing.T) {
	h := NewUserHandler(&fakeUserService{err: errors.New("connection refused")}, 1)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rr := httptest.NewRecorder()
	h.GetMe(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500 for a storage failure, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected code INTERNAL_ERROR, got %q", resp.Error.Code)
	}
}

// ─── Conversation Handler Tests ───

func TestCreateConversation(t *testing.T) {
	svc := &fakeConversationService{
		conv: &models.Conversation{
			ID:     1,
			UserID: 1,
			Messages: []models.Message{
				{ID: 1, ConversationID: 1, Content: services.WelcomeMessage, IsUser: false, Timestamp: time.Now()},
			},
		},
	}
	h := NewConversationHandler(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/conversations", nil)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}

	var conv models.Conversation
	if err := json.NewDecoder(rr.Body).Decode(&conv); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(conv.Messages) != 1 {
		t.Fatalf("Expected 1 welcome message, got %d", len(conv.Messages))
	}
	if conv.Messages[0].IsUser {
		t.Error("Welcome message must not be user-authored")
	}
	if conv.Messages[0].Content != services.WelcomeMessage {
		t.Errorf("Unexpected welcome content %q", conv.Messages[0].Content)
	}
}

func TestCreateConversation_NoUser(t *testing.T) {
	svc := &fakeConversationService{err: &services.NotFoundError{Message: "User not found"}}
	h := NewConversationHandler(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/conversations", nil)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rr.Code)
	}
}

func TestGetConversation_InvalidID(t *testing.T) {
	h := NewConversationHandler(&fakeConversationService{}, 1)

	r := chi.NewRouter()
	r.Get("/conversations/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/conversations/abc", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestGetConversation_NotFound(t *testing.T) {
	svc := &fakeConversationService{err: &services.NotFoundError{Message: "Conversation not found"}}
	h := NewConversationHandler(svc, 1)

	r := chi.NewRouter()
	r.Get("/conversations/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/conversations/99", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rr.Code)
	}
}

func TestGetConversation_WithHistory(t *testing.T) {
	svc := &fakeConversationService{
		conv: &models.Conversation{
			ID:     1,
			UserID: 1,
			Messages: []models.Message{
				{ID: 1, Content: services.WelcomeMessage, IsUser: false},
				{ID: 2, Content: "hi", IsUser: true},
				{ID: 3, Content: "Could you elaborate on that?", IsUser: false},
			},
		},
	}
	h := NewConversationHandler(svc, 1)

	r := chi.NewRouter()
	r.Get("/conversations/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/conversations/1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var conv models.Conversation
	if err := json.NewDecoder(rr.Body).Decode(&conv); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(conv.Messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(conv.Messages))
	}
}

func TestGetConversation_EmptyHistoryKeepsMessagesKey(t *testing.T) {
	svc := &fakeConversationService{
		conv: &models.Conversation{ID: 1, UserID: 1, Messages: []models.Message{}},
	}
	h := NewConversationHandler(svc, 1)

	r := chi.NewRouter()
	r.Get("/conversations/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/conversations/1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte(`"messages":[]`)) {
		t.Errorf("Expected messages key with empty array, got %s", rr.Body.String())
	}
}

func TestListConversations(t *testing.T) {
	svc := &fakeConversationService{
		list: []*models.Conversation{
			{ID: 1, UserID: 1, LastMessage: &models.Message{ID: 3, Content: "latest"}},
			{ID: 2, UserID: 1},
		},
	}
	h := NewConversationHandler(svc, 1)

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var list []models.Conversation
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(list))
	}
	if list[0].LastMessage == nil || list[0].LastMessage.Content != "latest" {
		t.Error("Expected last_message preview on first conversation")
	}
	if list[1].LastMessage != nil {
		t.Error("Expected no last_message on second conversation")
	}
}

// ─── Message Handler Tests ───

func TestPostMessage(t *testing.T) {
	svc := &fakeMessageService{
		botMsg: &models.Message{ID: 3, ConversationID: 1, Content: "I see. How does that make you feel?", IsUser: false, Timestamp: time.Now()},
	}
	h := NewMessageHandler(svc)

	body, _ := json.Marshal(models.PostMessageRequest{Content: "hi", ConversationID: 1})
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Post(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}
	if svc.gotConversationID != 1 || svc.gotContent != "hi" {
		t.Errorf("Service called with (%d, %q)", svc.gotConversationID, svc.gotContent)
	}

	var msg models.Message
	if err := json.NewDecoder(rr.Body).Decode(&msg); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if msg.IsUser {
		t.Error("Response must be the bot reply, not the user message")
	}
}

func TestPostMessage_InvalidBody(t *testing.T) {
	h := NewMessageHandler(&fakeMessageService{})

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.Post(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestPostMessage_MissingConversationID(t *testing.T) {
	h := NewMessageHandler(&fakeMessageService{})

	body, _ := json.Marshal(map[string]string{"content": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Post(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestPostMessage_ConversationMissing(t *testing.T) {
	svc := &fakeMessageService{err: &services.NotFoundError{Message: "Conversation not found"}}
	h := NewMessageHandler(svc)

	body, _ := json.Marshal(models.PostMessageRequest{Content: "hi", ConversationID: 99})
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Post(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rr.Code)
	}
}

func TestListMessages(t *testing.T) {
	svc := &fakeMessageService{
		list: []models.Message{
			{ID: 1, Content: services.WelcomeMessage, IsUser: false},
			{ID: 2, Content: "hi", IsUser: true},
			{ID: 3, Content: "Could you elaborate on that?", IsUser: false},
		},
	}
	h := NewMessageHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/messages?conversation_id=1", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if svc.gotConversationID != 1 {
		t.Errorf("Expected conversation_id 1, got %d", svc.gotConversationID)
	}

	var messages []models.Message
	if err := json.NewDecoder(rr.Body).Decode(&messages); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}
}

func TestListMessages_MissingParam(t *testing.T) {
	h := NewMessageHandler(&fakeMessageService{})

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestListMessages_EmptyResult(t *testing.T) {
	h := NewMessageHandler(&fakeMessageService{list: []models.Message{}})

	req := httptest.NewRequest(http.MethodGet, "/messages?conversation_id=42", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if body := bytes.TrimSpace(rr.Body.Bytes()); string(body) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", body)
	}
}
