package tlq_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	tlq "github.com/tinylittlequeue/tlq-go"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"validation",
			&tlq.ValidationError{Field: "body", Reason: "must not be empty"},
			"tlq: invalid body: must not be empty",
		},
		{
			"connection",
			&tlq.ConnectionError{URL: "http://localhost:1337/add", Err: cause},
			"tlq: connection to http://localhost:1337/add failed: connection refused",
		},
		{
			"timeout",
			&tlq.TimeoutError{URL: "http://localhost:1337/get", Err: cause},
			"tlq: request to http://localhost:1337/get timed out: connection refused",
		},
		{
			"server",
			&tlq.ServerError{StatusCode: http.StatusBadGateway, Body: "upstream gone"},
			"tlq: server returned 502: upstream gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")

	connErr := fmt.Errorf("wrapped: %w", &tlq.ConnectionError{URL: "u", Err: cause})
	assert.ErrorIs(t, connErr, cause)

	var asConn *tlq.ConnectionError
	assert.ErrorAs(t, connErr, &asConn)

	timeoutErr := &tlq.TimeoutError{URL: "u", Err: cause}
	assert.ErrorIs(t, timeoutErr, cause)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection", &tlq.ConnectionError{URL: "u", Err: errors.New("refused")}, true},
		{"timeout", &tlq.TimeoutError{URL: "u", Err: errors.New("deadline")}, true},
		{"server 5xx", &tlq.ServerError{StatusCode: http.StatusInternalServerError}, true},
		{"server 4xx", &tlq.ServerError{StatusCode: http.StatusNotFound}, false},
		{"validation", &tlq.ValidationError{Field: "ids", Reason: "empty"}, false},
		{"wrapped transient", fmt.Errorf("op failed: %w", &tlq.TimeoutError{URL: "u"}), true},
		{"unrelated", errors.New("something else"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tlq.IsRetryable(tt.err))
		})
	}
}
