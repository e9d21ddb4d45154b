package wsapme

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is a configuration error: WSAPME_USER_TOKEN is not set.
	ErrMissingToken = errors.New("WSAPME_USER_TOKEN is not set in environment variables")

	// ErrMalformedResponse means the vendor answered with a body we could not use.
	ErrMalformedResponse = errors.New("invalid JSON response from WSAPME")

	// ErrRecipientNotAllowed is returned when an allow-list is configured and
	// the recipient is not on it.
	ErrRecipientNotAllowed = errors.New("recipient is not in the allowed test numbers")
)

const maxBodySnippet = 200

// APIError is a non-2xx answer from the vendor.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wsapme %s: unexpected status code %d, body: %s", e.Operation, e.StatusCode, snippet(e.Body))
}

func snippet(body string) string {
	if len(body) <= maxBodySnippet {
		return body
	}
	return body[:maxBodySnippet]
}

func malformed(operation, body string) error {
	return fmt.Errorf("wsapme %s: %w: %s", operation, ErrMalformedResponse, snippet(body))
}
