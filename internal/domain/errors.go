package domain

import (
	"errors"
	"fmt"
	"time"
)

// Fetch failure kinds. Every *FetchError unwraps to exactly one of these.
var (
	ErrNotFound  = errors.New("content: collection not found")
	ErrTransient = errors.New("content: fetch failed")
	ErrMalformed = errors.New("content: malformed data")
)

// FetchError is the single error type the collection client returns.
type FetchError struct {
	Collection CollectionID
	Kind       error
	Err        error
	// RetryAfter is the store's back-off hint, zero when none was given.
	RetryAfter time.Duration
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Collection, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Collection, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Transient wraps err as a transient failure for collection c.
func Transient(c CollectionID, err error) *FetchError {
	return &FetchError{Collection: c, Kind: ErrTransient, Err: err}
}

// Malformed wraps err as a malformed-data failure for collection c.
func Malformed(c CollectionID, err error) *FetchError {
	return &FetchError{Collection: c, Kind: ErrMalformed, Err: err}
}

// NotFound reports that collection c does not exist in the store.
func NotFound(c CollectionID) *FetchError {
	return &FetchError{Collection: c, Kind: ErrNotFound}
}

// KindOf returns a short label for err's failure kind, for logs and metrics.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrTransient):
		return "transient"
	default:
		return "unknown"
	}
}
