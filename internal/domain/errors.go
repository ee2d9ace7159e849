package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidCurrency   = errors.New("invalid currency")
	ErrMalformedResponse = errors.New("malformed rates response")
)

// FetchError is returned when the rates source answers with a non-2xx status.
type FetchError struct {
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch rates: unexpected status %d", e.StatusCode)
}

// PersistenceError wraps a failure to store a snapshot. Op names the step that failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist snapshot: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
