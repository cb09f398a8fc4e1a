// Package upstream defines the error returned when an external API answers
// with a status other than the expected success code.
package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is returned by the external clients on a non-success response.
type Error struct {
	Service    string // "notion", "search"
	StatusCode int
	Body       json.RawMessage // raw upstream response body
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.StatusCode, string(e.Body))
}

// As reports whether err wraps an *Error and returns it.
func As(err error) (*Error, bool) {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}
