package icu

import (
	"errors"
	"fmt"
)

// ErrPatientNotFound is returned when the server responds successfully but
// reports that the requested patient does not exist.
var ErrPatientNotFound = errors.New("patient not found")

// TransportError wraps a failure to reach the server at all (DNS, refused
// connection, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("icu: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("icu: unexpected HTTP status %d", e.Code)
}

// DecodeError wraps a response body that is not valid JSON for the expected
// shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("icu: malformed response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
