package ndarray

import "errors"

// Sentinels are returned wrapped with context; match them with errors.Is.
var (
	// ErrBadShape is returned when a shape has no axes or a non-positive extent.
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrShapeMismatch is returned when data or a target shape does not
	// conform to the array's shape.
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")

	// ErrOutOfRange indicates that an index is outside the bounds of an axis.
	ErrOutOfRange = errors.New("ndarray: index out of range")

	// ErrRank is returned when the number of indices or ranges differs from
	// the number of axes.
	ErrRank = errors.New("ndarray: rank mismatch")

	// ErrZeroStep is returned for a Range with a step of zero.
	ErrZeroStep = errors.New("ndarray: slice step cannot be zero")

	// ErrNotScalar is returned by Scalar when the array holds more than one value.
	ErrNotScalar = errors.New("ndarray: array is not a scalar")
)
