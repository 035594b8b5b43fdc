package sora

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates the client was configured without a
// credential. It is raised before any network I/O.
var ErrMissingAPIKey = errors.New("sora: OPENAI_API_KEY is not set")

// APIError carries a non-success response from the remote service. The
// body is preserved verbatim so callers keep the full diagnostic detail.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sora: api error (status %d): %s", e.StatusCode, e.Body)
}

// IsAPIError unwraps err into an *APIError if there is one in the chain.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
