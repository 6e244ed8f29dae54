package library

import (
	"fmt"
	"math"
	"slices"
	"unicode"

	"github.com/wandadars/spitfire/ndarray"
)

// Dimension is a named, one-dimensional independent variable.
//
// A Dimension is a free-standing value: it is immutable and its grid is the
// one-dimensional values. A Library never holds a caller's Dimension; it
// incorporates a private copy as a BoundDimension.
type Dimension struct {
	name       string
	values     []float64
	structured bool
	min        float64
	max        float64
}

// NewDimension builds a structured dimension. Values must be non-empty and
// free of duplicates.
func NewDimension(name string, values []float64) (Dimension, error) {
	return newDimension(name, values, true)
}

// NewUnstructuredDimension builds a dimension whose values are one
// coordinate of a scattered point cloud. Duplicates are allowed.
func NewUnstructuredDimension(name string, values []float64) (Dimension, error) {
	return newDimension(name, values, false)
}

// DimensionFromArray builds a dimension from an array, which must be
// one-dimensional.
func DimensionFromArray(name string, values *ndarray.Array, structured bool) (Dimension, error) {
	if values == nil {
		return Dimension{}, &ConstructionError{Name: name, Reason: "values must not be nil"}
	}
	if values.NDim() != 1 {
		return Dimension{}, &ConstructionError{
			Name:   name,
			Reason: fmt.Sprintf("the values object must be one-dimensional, got shape %v; flatten it with Ravel first", values.Shape()),
		}
	}
	return newDimension(name, values.Data(), structured)
}

func newDimension(name string, values []float64, structured bool) (Dimension, error) {
	if !isIdentifier(name) {
		return Dimension{}, &ConstructionError{
			Name:   name,
			Reason: "the name must be a valid identifier (letters, digits and underscores, not starting with a digit; no hyphens or spaces)",
		}
	}
	if len(values) == 0 {
		return Dimension{}, &ConstructionError{Name: name, Reason: "values must not be empty"}
	}
	if structured {
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		for i := 1; i < len(sorted); i++ {
			if sorted[i] == sorted[i-1] || (math.IsNaN(sorted[i]) && math.IsNaN(sorted[i-1])) {
				return Dimension{}, &ConstructionError{
					Name:   name,
					Reason: fmt.Sprintf("duplicate value %g identified in structured dimension", sorted[i]),
				}
			}
		}
	}
	return Dimension{
		name:       name,
		values:     slices.Clone(values),
		structured: structured,
		min:        slices.Min(values),
		max:        slices.Max(values),
	}, nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Name returns the identifier of the independent variable.
func (d Dimension) Name() string { return d.name }

// Values returns a copy of the values of the independent variable.
func (d Dimension) Values() []float64 { return slices.Clone(d.values) }

// Min returns the smallest value.
func (d Dimension) Min() float64 { return d.min }

// Max returns the largest value.
func (d Dimension) Max() float64 { return d.max }

// NPts returns the number of values.
func (d Dimension) NPts() int { return len(d.values) }

// Structured reports whether the dimension is a Cartesian axis.
func (d Dimension) Structured() bool { return d.structured }

// Grid returns the values as a one-dimensional array. A free Dimension has
// no multidimensional grid.
func (d Dimension) Grid() *ndarray.Array {
	g, _ := ndarray.Vector(d.values)
	return g
}

// SetGrid always fails: only an owning Library may assign a grid, and it
// does so on its own BoundDimension copy.
func (d Dimension) SetGrid(*ndarray.Array) error {
	return &UnsupportedOperationError{
		Op:     fmt.Sprintf("setting the grid of dimension %q", d.name),
		Reason: "only an owning Library can set the multidimensional grid",
	}
}

// Equal reports whether d and o have the same name, mode and values.
func (d Dimension) Equal(o Dimension) bool {
	return d.name == o.name && d.structured == o.structured && slices.Equal(d.values, o.values)
}

func (d Dimension) String() string {
	s := "Structured"
	if !d.structured {
		s = "Unstructured"
	}
	return fmt.Sprintf("%s dimension %q spanning [%g, %g] with %d points", s, d.name, d.min, d.max, len(d.values))
}

// BoundDimension is a Dimension incorporated into a Library. Its grid is the
// broadcast view assigned by the owning Library during construction.
type BoundDimension struct {
	Dimension
	owner *Library
	grid  *ndarray.Array
}

func incorporate(owner *Library, d Dimension) *BoundDimension {
	d.values = slices.Clone(d.values)
	return &BoundDimension{Dimension: d, owner: owner}
}

// bind assigns the grid. It succeeds once, and only for the owner that
// incorporated the dimension.
func (d *BoundDimension) bind(owner *Library, grid *ndarray.Array) error {
	if owner == nil || d.owner != owner {
		return &UnsupportedOperationError{
			Op:     fmt.Sprintf("setting the grid of dimension %q", d.name),
			Reason: "the caller does not own this dimension",
		}
	}
	if d.grid != nil {
		return &UnsupportedOperationError{
			Op:     fmt.Sprintf("setting the grid of dimension %q", d.name),
			Reason: "the grid is already bound",
		}
	}
	d.grid = grid
	return nil
}

// Grid returns the library-assigned grid. The array is shared with the
// Library and must be treated as read-only.
func (d *BoundDimension) Grid() *ndarray.Array { return d.grid }

// SetGrid always fails; the grid is bound once by the owning Library.
func (d *BoundDimension) SetGrid(*ndarray.Array) error {
	return &UnsupportedOperationError{
		Op:     fmt.Sprintf("setting the grid of dimension %q", d.name),
		Reason: "the grid is bound by the owning Library at construction",
	}
}

// Free returns an independent, unbound copy of the dimension.
func (d *BoundDimension) Free() Dimension {
	f := d.Dimension
	f.values = slices.Clone(d.values)
	return f
}
