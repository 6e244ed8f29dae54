package ndarray

import (
	"fmt"
	"math"
	"slices"
)

// Order selects the flattening order used by Ravel.
type Order uint8

const (
	// RowMajor flattens with the last axis varying fastest ("C" order).
	RowMajor Order = iota
	// ColumnMajor flattens with the first axis varying fastest ("F" order).
	ColumnMajor
)

// String returns the numpy spelling of the order ("C" or "F").
func (o Order) String() string {
	if o == ColumnMajor {
		return "F"
	}
	return "C"
}

// ParseOrder maps "C"/"F" (case-insensitive) to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "C", "c":
		return RowMajor, nil
	case "F", "f":
		return ColumnMajor, nil
	default:
		return RowMajor, fmt.Errorf("ndarray: unknown order %q (want C or F)", s)
	}
}

// Array is a dense, row-major float64 array with at least one axis.
//
// The zero value is not usable; construct arrays with New, Empty, Full,
// FromSlice or Vector.
type Array struct {
	shape   []int
	strides []int
	data    []float64
}

// New returns a zero-filled array with the given shape.
// It panics if the shape is invalid; use Empty for an error-returning variant.
func New(shape ...int) *Array {
	a, err := Empty(shape...)
	if err != nil {
		panic(err)
	}
	return a
}

// Empty allocates an array with the given shape for incremental filling.
// Go has no uninitialised memory, so the contents are zero.
func Empty(shape ...int) (*Array, error) {
	n, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	return &Array{
		shape:   slices.Clone(shape),
		strides: stridesOf(shape),
		data:    make([]float64, n),
	}, nil
}

// Full returns an array of the given shape with every element set to v.
func Full(v float64, shape ...int) (*Array, error) {
	a, err := Empty(shape...)
	if err != nil {
		return nil, err
	}
	for i := range a.data {
		a.data[i] = v
	}
	return a, nil
}

// FromSlice returns an array of the given shape holding a copy of data,
// which must be laid out in row-major order.
func FromSlice(shape []int, data []float64) (*Array, error) {
	n, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values cannot fill shape %v", ErrShapeMismatch, len(data), shape)
	}
	return &Array{
		shape:   slices.Clone(shape),
		strides: stridesOf(shape),
		data:    slices.Clone(data),
	}, nil
}

// Vector returns a one-dimensional array holding a copy of values.
func Vector(values []float64) (*Array, error) {
	return FromSlice([]int{len(values)}, values)
}

func sizeOf(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: no axes", ErrBadShape)
	}
	n := 1
	for axis, ext := range shape {
		if ext <= 0 {
			return 0, fmt.Errorf("%w: axis %d has extent %d", ErrBadShape, axis, ext)
		}
		n *= ext
	}
	return n, nil
}

func stridesOf(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}

// Shape returns a copy of the array's extents.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// NDim returns the number of axes.
func (a *Array) NDim() int { return len(a.shape) }

// Size returns the total number of elements.
func (a *Array) Size() int { return len(a.data) }

// Data returns the live row-major backing slice. Writes are visible to
// every holder of the array.
func (a *Array) Data() []float64 { return a.data }

// HasShape reports whether the array's extents equal shape exactly.
func (a *Array) HasShape(shape []int) bool { return slices.Equal(a.shape, shape) }

func (a *Array) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: %d indices for %d axes", ErrRank, len(idx), len(a.shape))
	}
	off := 0
	for axis, i := range idx {
		ext := a.shape[axis]
		if i < 0 {
			i += ext
		}
		if i < 0 || i >= ext {
			return 0, fmt.Errorf("%w: index %d on axis %d with extent %d", ErrOutOfRange, idx[axis], axis, ext)
		}
		off += i * a.strides[axis]
	}
	return off, nil
}

// At returns the element at idx. Negative indices count from the end.
func (a *Array) At(idx ...int) (float64, error) {
	off, err := a.offset(idx)
	if err != nil {
		return 0, err
	}
	return a.data[off], nil
}

// Set stores v at idx. Negative indices count from the end.
func (a *Array) Set(v float64, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return &Array{
		shape:   slices.Clone(a.shape),
		strides: slices.Clone(a.strides),
		data:    slices.Clone(a.data),
	}
}

// Reshape returns a copy of the array with a new shape of the same size.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	n, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if n != len(a.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShapeMismatch, a.shape, shape)
	}
	return FromSlice(shape, a.data)
}

// Squeeze returns a copy with the given length-one axes removed, or every
// length-one axis when none are given. Removing all axes is refused with
// ErrBadShape; use Scalar for single-element arrays.
func (a *Array) Squeeze(axes ...int) (*Array, error) {
	drop := make([]bool, len(a.shape))
	if len(axes) == 0 {
		for axis, ext := range a.shape {
			drop[axis] = ext == 1
		}
	}
	for _, axis := range axes {
		if axis < 0 || axis >= len(a.shape) {
			return nil, fmt.Errorf("%w: axis %d for %d axes", ErrOutOfRange, axis, len(a.shape))
		}
		if a.shape[axis] != 1 {
			return nil, fmt.Errorf("%w: cannot squeeze axis %d with extent %d", ErrShapeMismatch, axis, a.shape[axis])
		}
		drop[axis] = true
	}
	shape := make([]int, 0, len(a.shape))
	for axis, ext := range a.shape {
		if !drop[axis] {
			shape = append(shape, ext)
		}
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: squeezing %v removes every axis", ErrBadShape, a.shape)
	}
	return FromSlice(shape, a.data)
}

// Scalar returns the single element of a one-element array.
func (a *Array) Scalar() (float64, error) {
	if len(a.data) != 1 {
		return 0, fmt.Errorf("%w: shape %v", ErrNotScalar, a.shape)
	}
	return a.data[0], nil
}

// Ravel returns a flattened copy in the requested order.
func (a *Array) Ravel(order Order) []float64 {
	if order == RowMajor || len(a.shape) == 1 {
		return slices.Clone(a.data)
	}
	out := make([]float64, 0, len(a.data))
	idx := make([]int, len(a.shape))
	for range len(a.data) {
		off := 0
		for axis, i := range idx {
			off += i * a.strides[axis]
		}
		out = append(out, a.data[off])
		// First axis fastest.
		for axis := range idx {
			idx[axis]++
			if idx[axis] < a.shape[axis] {
				break
			}
			idx[axis] = 0
		}
	}
	return out
}

// Min returns the smallest element.
func (a *Array) Min() float64 { return slices.Min(a.data) }

// Max returns the largest element.
func (a *Array) Max() float64 { return slices.Max(a.data) }

// String renders the shape and a short preview of the data.
func (a *Array) String() string {
	const preview = 6
	if len(a.data) <= preview {
		return fmt.Sprintf("Array%v%v", a.shape, a.data)
	}
	return fmt.Sprintf("Array%v%v...", a.shape, a.data[:preview])
}

// Equal reports whether a and b have the same shape and identical elements.
func Equal(a, b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	return slices.Equal(a.shape, b.shape) && slices.Equal(a.data, b.data)
}

// AllClose reports whether a and b have the same shape and every pair of
// elements satisfies |x-y| <= atol + rtol*|y|.
func AllClose(a, b *Array, rtol, atol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !slices.Equal(a.shape, b.shape) {
		return false
	}
	for i, x := range a.data {
		y := b.data[i]
		if math.Abs(x-y) > atol+rtol*math.Abs(y) {
			return false
		}
	}
	return true
}
