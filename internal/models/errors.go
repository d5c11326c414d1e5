package models

// APIError is the error payload inside an ErrorResponse.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse is the JSON envelope for all non-2xx responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}
