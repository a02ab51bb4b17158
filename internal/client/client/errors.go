package client

import "fmt"

// APIError is returned when the relay answers with a non-2xx status. It
// carries the HTTP status code and the message body, so callers can
// distinguish authorization failures from transport trouble.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("relay error (status %d): %s", e.StatusCode, e.Message)
}
