package gateway

import "fmt"

// APIError is a non-2xx response from a collaborator service. Transport
// failures (connection refused, timeouts) are returned as plain wrapped
// errors, never as APIError.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service returned %d", e.StatusCode)
}
