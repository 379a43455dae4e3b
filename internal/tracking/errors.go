package tracking

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an anonymous user tries to record a read.
	ErrNotAuthenticated = errors.New("user is not authenticated")

	// ErrNotFound is returned for a nil or unknown forum/topic reference.
	ErrNotFound = errors.New("not found")
)

// StoreError wraps a failure reported by the Store. It is never retried here.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
