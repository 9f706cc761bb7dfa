package tlq

import (
	"errors"
	"fmt"
)

// ValidationError reports input rejected by the client before any network
// call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tlq: invalid %s: %s", e.Field, e.Reason)
}

// ConnectionError reports a failure to reach the TLQ server.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("tlq: connection to %s failed: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError reports that no response arrived within the configured
// request timeout.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("tlq: request to %s timed out: %v", e.URL, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ServerError reports a non-2xx response from the TLQ server. It also
// covers 2xx responses whose body could not be decoded.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("tlq: server returned %d: %s", e.StatusCode, e.Body)
}

// IsRetryable reports whether err belongs to a transient failure class
// that the client retries: connection errors, timeouts, and 5xx server
// responses.
func IsRetryable(err error) bool {
	var connErr *ConnectionError
	var timeoutErr *TimeoutError
	var serverErr *ServerError
	switch {
	case errors.As(err, &connErr), errors.As(err, &timeoutErr):
		return true
	case errors.As(err, &serverErr):
		return serverErr.StatusCode >= 500
	}
	return false
}
