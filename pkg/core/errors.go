package core

import (
	"errors"
	"fmt"

	"github.com/eventmem/eventmem-go/pkg/extract"
	"github.com/eventmem/eventmem-go/pkg/reconcile"
	"github.com/eventmem/eventmem-go/pkg/store"
)

// Predefined errors for common failure scenarios.
//
// The storage, reconciliation, and extraction sentinels are re-exported
// from their owning packages so errors.Is works uniformly at the client
// surface.
var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrValidation indicates that a draft could not be reconciled
	// (missing target date, or expires would precede target).
	// Fatal to the commit in progress only; the store stays intact.
	ErrValidation = reconcile.ErrValidation

	// ErrExtraction indicates that the extraction collaborator failed.
	ErrExtraction = extract.ErrExtraction

	// ErrWrite indicates that persisting a record failed. The previous
	// document content is left intact.
	ErrWrite = store.ErrWrite

	// ErrNotFound indicates that a requested record was not found.
	ErrNotFound = store.ErrNotFound
)

// MemoryError wraps errors with operation context.
//
// It provides additional context about which operation failed, making
// error messages more informative for debugging.
//
// Example:
//
//	err := &MemoryError{
//	    Op:  "Commit",
//	    Err: ErrValidation,
//	}
//	// Error() returns: "eventmem: Commit: invalid draft"
type MemoryError struct {
	// Op is the name of the operation that failed.
	Op string

	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message.
//
// The format is: "eventmem: <Op>: <Err>"
func (e *MemoryError) Error() string {
	return fmt.Sprintf("eventmem: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
//
// This allows using errors.Is() and errors.As() with MemoryError.
func (e *MemoryError) Unwrap() error {
	return e.Err
}

// NewMemoryError creates a new MemoryError wrapping the given error.
//
// If err is nil, returns nil. This allows safe error wrapping:
//
//	if err != nil {
//	    return NewMemoryError("Commit", err)
//	}
func NewMemoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &MemoryError{
		Op:  op,
		Err: err,
	}
}
