package stripe

import "fmt"

// APIError is a non-2xx response from the gateway, preserved for logging.
// Callers translate it into a domain error at the service boundary.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stripe: %s (type=%s, code=%s, status=%d)", e.Message, e.Type, e.Code, e.StatusCode)
}
