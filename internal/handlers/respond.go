package handlers

import (
	"encoding/json"
	"net/http"

	"chatbox-backend/internal/middleware"
	"chatbox-backend/internal/models"
	"chatbox-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get(middleware.RequestIDHeader),
		},
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// NotFound is the only domain error; anything unrecognized is a storage
// failure and surfaces as 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", e.Message, r))
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", e.Message, r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
