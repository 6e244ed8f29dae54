package spitfire

import (
	"errors"
	"fmt"

	"github.com/wandadars/spitfire/blobstore"
)

var (
	// ErrNotFound is returned when no library is stored under a name.
	ErrNotFound = errors.New("spitfire: library not found")
	// ErrInvalidName is returned for names that cannot be used as blob keys.
	ErrInvalidName = errors.New("spitfire: invalid library name")
)

// OperationError records the repository operation and library name that failed.
//
// The underlying error can be accessed via errors.Unwrap.
type OperationError struct {
	Op    string
	Name  string
	cause error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("spitfire: %s %q: %v", e.Op, e.Name, e.cause)
}

func (e *OperationError) Unwrap() error { return e.cause }

func translateError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	// Not found unification.
	if errors.Is(err, blobstore.ErrNotFound) {
		err = fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return &OperationError{Op: op, Name: name, cause: err}
}
