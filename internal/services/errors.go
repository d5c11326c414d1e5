package services

// NotFoundError means a referenced user or conversation does not exist. It
// is the only domain error; handlers map it to HTTP 404.
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError rejects malformed input before it reaches storage.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }
