package library

import (
	"fmt"

	"github.com/wandadars/spitfire/ndarray"
)

// Slice returns a new library restricted to one Range per dimension, in
// dimension order.
//
// The result always has the same number of dimensions as l: an Index range
// leaves a dimension with a single value. Every property is sliced with the
// same ranges. Extra attributes are carried over (shallow copy). Slicing an
// unstructured library is not supported.
func (l *Library) Slice(ranges ...ndarray.Range) (*Library, error) {
	if !l.structured {
		return nil, &UnsupportedOperationError{Op: "Slice", Reason: "slicing is not supported for unstructured libraries"}
	}
	if len(ranges) != len(l.dims) {
		return nil, &IndexError{Expected: len(l.dims), Actual: len(ranges)}
	}

	dims := make([]Dimension, len(l.dims))
	for i, d := range l.dims {
		vec, err := ndarray.Vector(d.values)
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", d.name, err)
		}
		// A 1-D slice stays 1-D, so a collapsed index comes back as a
		// length-one sequence.
		sliced, err := vec.Slice(ranges[i])
		if err != nil {
			return nil, fmt.Errorf("%w: dimension %q with range %s: %w", ErrIndex, d.name, ranges[i], err)
		}
		nd, err := newDimension(d.name, sliced.Data(), d.structured)
		if err != nil {
			return nil, err
		}
		dims[i] = nd
	}

	out, err := New(dims...)
	if err != nil {
		return nil, err
	}
	for _, name := range l.propOrder {
		p, err := l.props[name].Slice(ranges...)
		if err != nil {
			return nil, fmt.Errorf("%w: property %q: %w", ErrIndex, name, err)
		}
		if !p.HasShape(out.shape) {
			return nil, &ShapeMismatchError{Property: name, Expected: out.Shape(), Actual: p.Shape()}
		}
		out.store(name, p)
	}
	out.attrs = cloneAttrs(l.attrs, false)
	return out, nil
}

// Point holds the scalar values left when every dimension of a library has
// been squeezed away.
type Point struct {
	Dimensions map[string]float64
	Properties map[string]float64
}

// SqueezeResult is the outcome of Squeeze: exactly one of Library and Point
// is set.
type SqueezeResult struct {
	Library *Library
	Point   *Point
}

// Squeeze returns a new library with every single-valued dimension removed
// and every property squeezed along those axes.
//
// A library in which every dimension has a single value has no
// zero-dimensional representation; the result then carries a Point with
// the scalar dimension and property values instead.
func Squeeze(l *Library) (SqueezeResult, error) {
	if len(l.dims) == 0 {
		return SqueezeResult{Library: Copy(l)}, nil
	}

	var (
		kept []Dimension
		axes []int
	)
	for i, d := range l.dims {
		if d.NPts() > 1 {
			kept = append(kept, d.Free())
		} else {
			axes = append(axes, i)
		}
	}
	if len(kept) == 0 {
		pt := &Point{
			Dimensions: make(map[string]float64, len(l.dims)),
			Properties: make(map[string]float64, len(l.props)),
		}
		for _, d := range l.dims {
			pt.Dimensions[d.name] = d.values[0]
		}
		for _, name := range l.propOrder {
			v, err := l.props[name].Scalar()
			if err != nil {
				return SqueezeResult{}, fmt.Errorf("property %q: %w", name, err)
			}
			pt.Properties[name] = v
		}
		return SqueezeResult{Point: pt}, nil
	}

	out, err := New(kept...)
	if err != nil {
		return SqueezeResult{}, err
	}
	for _, name := range l.propOrder {
		p := l.props[name]
		if l.structured && len(axes) > 0 {
			if p, err = p.Squeeze(axes...); err != nil {
				return SqueezeResult{}, &ShapeMismatchError{Property: name, Expected: out.Shape(), Actual: l.props[name].Shape()}
			}
		}
		if err := out.SetProperty(name, p); err != nil {
			return SqueezeResult{}, err
		}
	}
	out.attrs = cloneAttrs(l.attrs, false)
	return SqueezeResult{Library: out}, nil
}

// Copy rebuilds l from the same dimension content and replays every
// property assignment. Property storage and the attribute map are
// independent of l; attribute values themselves are shared.
func Copy(l *Library) *Library { return rebuild(l, false) }

// DeepCopy is Copy with fresh dimension value storage and deep-copied
// attribute values, so nothing is shared with l.
func DeepCopy(l *Library) *Library { return rebuild(l, true) }

func rebuild(l *Library, deep bool) *Library {
	dims := make([]Dimension, len(l.dims))
	for i, d := range l.dims {
		if deep {
			dims[i] = d.Free()
		} else {
			dims[i] = d.Dimension
		}
	}
	out, err := New(dims...)
	if err != nil {
		// l satisfied every construction invariant already.
		panic(fmt.Sprintf("library: rebuilding a valid library failed: %v", err))
	}
	for _, name := range l.propOrder {
		p := l.props[name]
		if deep {
			p = p.Clone()
		}
		if err := out.SetProperty(name, p); err != nil {
			panic(fmt.Sprintf("library: replaying property %q failed: %v", name, err))
		}
	}
	out.attrs = cloneAttrs(l.attrs, deep)
	return out
}
