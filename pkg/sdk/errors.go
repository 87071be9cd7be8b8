package sdk

import "fmt"

// APIError is a non-2xx response from the specbot API.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // API error code, e.g. "no_query"
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("specbot API error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("specbot API error %d: %s", e.Status, e.Message)
}
