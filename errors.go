package cashbook

import (
	"errors"
	"fmt"
)

// Errors returned by the Book insert operations. They are always wrapped with
// some context, use errors.Is to test them.
var (
	// ErrInvalidValue reports a negative amount, a missing date, an unknown
	// label or a foreign currency. Nothing is written.
	ErrInvalidValue = errors.New("invalid value")

	// ErrDuplicateKey reports an entry conflicting with an existing unique key
	// (closing date, or fixed cost month and concept). The existing entry is
	// left untouched.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrAlreadyExists reports a category label that is already known. It is
	// an idempotent no-op, not a failure.
	ErrAlreadyExists = errors.New("already exists")
)

// RowError reports the invalid row of a batch.
type RowError struct {
	Index int // Index is the 0-based position of the row in the batch.
	Err   error
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Index+1, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }
