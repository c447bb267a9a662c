package api

import "fmt"

// ResponseCodeError is returned for any site API response with a 4xx or 5xx
// status. The body is kept as parsed JSON when it parses, raw text when it
// doesn't.
type ResponseCodeError struct {
	Status       int
	ResponseJSON map[string]any
	ResponseText string
}

func (e *ResponseCodeError) Error() string {
	if len(e.ResponseJSON) > 0 {
		return fmt.Sprintf("status: %d, response: %v", e.Status, e.ResponseJSON)
	}
	return fmt.Sprintf("status: %d, response: %s", e.Status, e.ResponseText)
}
