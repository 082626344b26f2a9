package apierr

import (
	"errors"
	"net/http"
)

// APIError is the decoded body of a non-2xx Confluence response.
type APIError struct {
	Status  int            // HTTP status
	Message string         // best human summary found in the body
	Payload map[string]any // decoded JSON object, nil when the body was not an object
	Raw     string         // raw (trimmed) body
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// HTTPStatus exposes the status code to the classifier.
func (e *APIError) HTTPStatus() int { return e.Status }

// StatusOf returns the HTTP status of the response that produced err. The
// decoded body wins over any wrapper; 0 means no status is recorded.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	var hs interface{ HTTPStatus() int }
	if errors.As(err, &hs) {
		return hs.HTTPStatus()
	}
	return 0
}
