package library

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction matches every *ConstructionError.
	ErrConstruction = errors.New("library: invalid construction")

	// ErrShapeMismatch matches every *ShapeMismatchError.
	ErrShapeMismatch = errors.New("library: shape mismatch")

	// ErrUnsupported matches every *UnsupportedOperationError.
	ErrUnsupported = errors.New("library: unsupported operation")

	// ErrNotFound matches every *LookupError.
	ErrNotFound = errors.New("library: not found")

	// ErrIndex matches every *IndexError.
	ErrIndex = errors.New("library: invalid index")
)

// ConstructionError reports an invalid Dimension or Library definition.
type ConstructionError struct {
	// Name is the offending dimension name, empty for library-wide failures.
	Name   string
	Reason string
	cause  error
}

func (e *ConstructionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("error building library: %s", e.Reason)
	}
	return fmt.Sprintf("error building dimension %q: %s", e.Name, e.Reason)
}

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

func (e *ConstructionError) Unwrap() error { return e.cause }

// ShapeMismatchError reports a property array whose shape does not conform
// to the library grid.
type ShapeMismatchError struct {
	Property string
	Expected []int
	Actual   []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("the shape of the %q array does not conform to that of the library: given shape = %v, grid shape = %v",
		e.Property, e.Actual, e.Expected)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }

// UnsupportedOperationError reports an operation that is not allowed on the
// receiver in its current form.
type UnsupportedOperationError struct {
	Op     string
	Reason string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s is not supported: %s", e.Op, e.Reason)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupported }

// LookupError reports a missing dimension, property or accessor.
type LookupError struct {
	// Kind is "dimension", "property", "field" or "accessor".
	Kind string
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *LookupError) Is(target error) bool { return target == ErrNotFound }

// IndexError reports a slice specification with the wrong number of ranges.
type IndexError struct {
	Expected int
	Actual   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("slicing must be given the same number of ranges as there are dimensions: got %d ranges for a library of dimension %d",
		e.Actual, e.Expected)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndex }
