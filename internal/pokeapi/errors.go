package pokeapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is matched by every *StatusError.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrMalformedResponse is returned when a body cannot be decoded into
	// the expected shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInvalidProxyAddress is returned when the proxy address is not in
	// "host:port" form.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrEmptyURL is returned when a resource reference is empty.
	ErrEmptyURL = errors.New("empty resource URL")
)

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d", e.URL, e.StatusCode)
}

// Is makes errors.Is(err, ErrUnexpectedStatus) true for any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
