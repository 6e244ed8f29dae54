package library

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/wandadars/spitfire/ndarray"
)

// Library is a container of named property arrays defined over the grid
// derived from an ordered set of dimensions.
//
// The grid is computed once by New. Properties can be assigned any number
// of times; each assignment stores a private copy. Slice, Squeeze, Copy and
// DeepCopy build new libraries and never modify their source.
//
// A Library is not safe for concurrent mutation.
type Library struct {
	dims       []*BoundDimension
	dimIndex   map[string]int
	accessors  map[string]accessor
	shape      []int
	structured bool

	props     map[string]*ndarray.Array
	propOrder []string
	attrs     map[string]any
}

// New builds a library from the given dimensions, in axis order.
//
// All dimensions must be structured, in which case the grid is their
// Cartesian product with dimension i varying along axis i, or all
// unstructured, in which case they must have the same number of points and
// the grid is that flat point cloud. Dimension names must be unique.
//
// New with no dimensions returns an empty library that accepts no
// properties.
func New(dims ...Dimension) (*Library, error) {
	lib := &Library{
		dimIndex:   make(map[string]int, len(dims)),
		props:      make(map[string]*ndarray.Array),
		attrs:      make(map[string]any),
		structured: true,
	}

	for i, d := range dims {
		if d.name == "" {
			return nil, &ConstructionError{Reason: fmt.Sprintf("dimension at position %d is uninitialised", i)}
		}
		if _, dup := lib.dimIndex[d.name]; dup {
			return nil, &ConstructionError{Name: d.name, Reason: "duplicate dimension name in library"}
		}
		lib.dimIndex[d.name] = i
		lib.dims = append(lib.dims, incorporate(lib, d))
	}

	if len(dims) > 0 {
		lib.structured = dims[0].structured
		for _, d := range dims[1:] {
			if d.structured != lib.structured {
				return nil, &ConstructionError{Reason: "dimensions must be either all structured or all unstructured"}
			}
		}
		var err error
		if lib.structured {
			err = lib.bindStructured()
		} else {
			err = lib.bindUnstructured()
		}
		if err != nil {
			return nil, err
		}
	}

	lib.buildAccessors()
	return lib, nil
}

func (l *Library) bindStructured() error {
	vectors := make([][]float64, len(l.dims))
	for i, d := range l.dims {
		vectors[i] = d.values
	}
	grids, err := ndarray.Meshgrid(vectors...)
	if err != nil {
		return &ConstructionError{Reason: "cannot derive structured grid", cause: err}
	}
	l.shape = grids[0].Shape()
	for i, d := range l.dims {
		if err := d.bind(l, grids[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Library) bindUnstructured() error {
	n := l.dims[0].NPts()
	for _, d := range l.dims[1:] {
		if d.NPts() != n {
			return &ConstructionError{
				Name:   d.name,
				Reason: fmt.Sprintf("unstructured dimensions did not have the same grid shape: [%d] vs [%d]", d.NPts(), n),
			}
		}
	}
	l.shape = []int{n}
	for _, d := range l.dims {
		grid, err := ndarray.Vector(d.values)
		if err != nil {
			return &ConstructionError{Name: d.name, Reason: "cannot derive unstructured grid", cause: err}
		}
		if err := d.bind(l, grid); err != nil {
			return err
		}
	}
	return nil
}

// Dims returns the incorporated dimensions in axis order.
func (l *Library) Dims() []*BoundDimension { return slices.Clone(l.dims) }

// Dim returns the dimension with the given name.
func (l *Library) Dim(name string) (*BoundDimension, error) {
	i, ok := l.dimIndex[name]
	if !ok {
		return nil, &LookupError{Kind: "dimension", Name: name}
	}
	return l.dims[i], nil
}

// DimNames returns the dimension names in axis order.
func (l *Library) DimNames() []string {
	names := make([]string, len(l.dims))
	for i, d := range l.dims {
		names[i] = d.name
	}
	return names
}

// Shape returns the grid shape, one extent per dimension. It is empty for
// a library without dimensions.
func (l *Library) Shape() []int { return slices.Clone(l.shape) }

// NDim returns the number of dimensions.
func (l *Library) NDim() int { return len(l.dims) }

// Size returns the number of grid points.
func (l *Library) Size() int {
	if len(l.shape) == 0 {
		return 0
	}
	n := 1
	for _, ext := range l.shape {
		n *= ext
	}
	return n
}

// Structured reports whether the grid is a Cartesian product.
func (l *Library) Structured() bool { return l.structured }

// SetProperty stores a copy of values under name, replacing any existing
// property. The array's shape must equal the grid shape exactly.
func (l *Library) SetProperty(name string, values *ndarray.Array) error {
	if values == nil {
		return &ShapeMismatchError{Property: name, Expected: l.Shape()}
	}
	if len(l.shape) == 0 || !values.HasShape(l.shape) {
		return &ShapeMismatchError{Property: name, Expected: l.Shape(), Actual: values.Shape()}
	}
	l.store(name, values.Clone())
	return nil
}

// SetPropertyData stores a property from a flat row-major slice holding
// exactly Size() values, the layout produced by solvers that write one
// value per grid point.
func (l *Library) SetPropertyData(name string, data []float64) error {
	if len(l.shape) == 0 || len(data) != l.Size() {
		return &ShapeMismatchError{Property: name, Expected: l.Shape(), Actual: []int{len(data)}}
	}
	values, err := ndarray.FromSlice(l.shape, data)
	if err != nil {
		return &ShapeMismatchError{Property: name, Expected: l.Shape(), Actual: []int{len(data)}}
	}
	l.store(name, values)
	return nil
}

// store takes ownership of values.
func (l *Library) store(name string, values *ndarray.Array) {
	if _, ok := l.props[name]; !ok {
		l.propOrder = append(l.propOrder, name)
	}
	l.props[name] = values
}

// Property returns the stored array for name.
//
// The returned array is the library's own storage, not a copy: in-place
// writes through it are visible to the library, and concurrent writers race.
// Clone it when isolation is needed.
func (l *Library) Property(name string) (*ndarray.Array, error) {
	a, ok := l.props[name]
	if !ok {
		return nil, &LookupError{Kind: "property", Name: name}
	}
	return a, nil
}

// HasProperty reports whether a property named name is stored.
func (l *Library) HasProperty(name string) bool {
	_, ok := l.props[name]
	return ok
}

// Properties returns the property names in first-assignment order.
func (l *Library) Properties() []string { return slices.Clone(l.propOrder) }

// Remove deletes the named properties. If any name is absent nothing is
// removed and a LookupError naming it is returned.
func (l *Library) Remove(names ...string) error {
	for _, name := range names {
		if _, ok := l.props[name]; !ok {
			return &LookupError{Kind: "property", Name: name}
		}
	}
	for _, name := range names {
		delete(l.props, name)
	}
	l.propOrder = slices.DeleteFunc(l.propOrder, func(name string) bool {
		_, ok := l.props[name]
		return !ok
	})
	return nil
}

// EmptyDataset returns a grid-shaped array for filling one point, line or
// plane at a time before assigning it as a property.
func (l *Library) EmptyDataset() (*ndarray.Array, error) {
	if len(l.shape) == 0 {
		return nil, &UnsupportedOperationError{Op: "EmptyDataset", Reason: "the library has no dimensions"}
	}
	return ndarray.Empty(l.shape...)
}

// ExtraAttributes returns the live user attribute map. The binary format
// persists nil, bool, string, int, int64, float64, []float64, []int,
// []string, map[string]string, *ndarray.Array, and []any or map[string]any
// built from those; saving any other value fails.
func (l *Library) ExtraAttributes() map[string]any { return l.attrs }

// SetExtraAttribute stores a user attribute.
func (l *Library) SetExtraAttribute(key string, value any) { l.attrs[key] = value }

// Equal reports whether l and o have equal dimensions in the same order,
// identical property arrays and deeply equal extra attributes.
func (l *Library) Equal(o *Library) bool {
	if l == nil || o == nil {
		return l == o
	}
	if len(l.dims) != len(o.dims) || len(l.props) != len(o.props) {
		return false
	}
	for i, d := range l.dims {
		if !d.Dimension.Equal(o.dims[i].Dimension) {
			return false
		}
	}
	for name, a := range l.props {
		if !ndarray.Equal(a, o.props[name]) {
			return false
		}
	}
	return reflect.DeepEqual(l.attrs, o.attrs)
}

func (l *Library) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Spitfire Library with %d dimensions and %d properties\n", len(l.dims), len(l.props))
	b.WriteString("------------------------------------------\n")
	for i, d := range l.dims {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d.Dimension)
	}
	fmt.Fprintf(&b, "Properties: [%s]", strings.Join(l.propOrder, ", "))
	return b.String()
}

func cloneAttrs(attrs map[string]any, deep bool) map[string]any {
	if !deep {
		return maps.Clone(attrs)
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = deepCopyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = deepCopyValue(e)
		}
		return out
	case []float64:
		return slices.Clone(x)
	case []int:
		return slices.Clone(x)
	case []string:
		return slices.Clone(x)
	case map[string]string:
		return maps.Clone(x)
	case *ndarray.Array:
		return x.Clone()
	default:
		return v
	}
}
