package store

import (
	"errors"
	"strings"
)

// Typed store failures. Input errors never leave partial mutations behind.
var (
	ErrNotFound       = errors.New("trend not found")
	ErrNoChanges      = errors.New("no changes made")
	ErrInvalidMetrics = errors.New("invalid engagement metrics format")
	ErrEmptyPatch     = errors.New("no update data provided")
	ErrNothingStored  = errors.New("no valid trends could be processed")
)

// InvalidIDsError rejects an operation that named one or more identifiers
// not in the 24-hex format the store uses. The operation is refused as a
// whole; no subset is acted on.
type InvalidIDsError struct {
	IDs []string
}

func (e *InvalidIDsError) Error() string {
	return "invalid trend id format: " + strings.Join(e.IDs, ", ")
}
