package handlers

import (
	"context"
	"net/http"

	"chatbox-backend/internal/models"
)

type userService interface {
	Get(ctx context.Context, id int64) (*models.User, error)
}

// UserHandler serves the single seeded account. The account id is resolved
// once at startup and carried here as configuration rather than re-queried
// per request.
type UserHandler struct {
	users  userService
	userID int64
}

func NewUserHandler(users userService, userID int64) *UserHandler {
	return &UserHandler{users: users, userID: userID}
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), h.userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
