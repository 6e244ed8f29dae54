package ndarray

import (
	"fmt"
	"strconv"
)

type rangeKind uint8

const (
	rangeSpan rangeKind = iota
	rangeIndex
)

// Range is a per-axis selection with Python slice semantics.
//
// Bounds may be negative to count from the end of the axis. Unset bounds
// default to the full extent in the direction of the step. The zero value
// selects the whole axis.
type Range struct {
	kind     rangeKind
	start    int
	stop     int
	step     int
	hasStart bool
	hasStop  bool
	hasStep  bool
}

// All selects every element of an axis, like ":".
func All() Range { return Range{} }

// Index selects the single element i, like "i".
func Index(i int) Range { return Range{kind: rangeIndex, start: i, hasStart: true} }

// Span selects [start, stop), like "start:stop".
func Span(start, stop int) Range {
	return Range{start: start, stop: stop, hasStart: true, hasStop: true}
}

// From selects [start, end), like "start:".
func From(start int) Range { return Range{start: start, hasStart: true} }

// To selects [0, stop), like ":stop".
func To(stop int) Range { return Range{stop: stop, hasStop: true} }

// By returns r with the given step, like "start:stop:step".
// It has no effect on an Index range.
func (r Range) By(step int) Range {
	if r.kind == rangeIndex {
		return r
	}
	r.step = step
	r.hasStep = true
	return r
}

// IsIndex reports whether r selects a single element by index.
func (r Range) IsIndex() bool { return r.kind == rangeIndex }

// Indices resolves r against an axis of extent n and returns the selected
// positions in selection order.
func (r Range) Indices(n int) ([]int, error) {
	if r.kind == rangeIndex {
		i := r.start
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: index %d for extent %d", ErrOutOfRange, r.start, n)
		}
		return []int{i}, nil
	}

	step := 1
	if r.hasStep {
		step = r.step
	}
	if step == 0 {
		return nil, ErrZeroStep
	}

	start, stop := r.start, r.stop
	if !r.hasStart {
		start = 0
		if step < 0 {
			start = n - 1
		}
	} else {
		start = clampBound(start, n, step)
	}
	if !r.hasStop {
		stop = n
		if step < 0 {
			stop = -1
		}
	} else {
		stop = clampBound(stop, n, step)
	}

	var count int
	switch {
	case step > 0 && start < stop:
		count = (stop-start-1)/step + 1
	case step < 0 && stop < start:
		count = (start-stop-1)/(-step) + 1
	}
	out := make([]int, count)
	for k := range out {
		out[k] = start + k*step
	}
	return out, nil
}

// clampBound normalises an explicit bound the way Python's slice.indices does.
func clampBound(b, n, step int) int {
	if b < 0 {
		b += n
		if b < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return b
	}
	if b >= n {
		if step < 0 {
			return n - 1
		}
		return n
	}
	return b
}

// String renders r in Python slice notation.
func (r Range) String() string {
	if r.kind == rangeIndex {
		return strconv.Itoa(r.start)
	}
	s := ""
	if r.hasStart {
		s += strconv.Itoa(r.start)
	}
	s += ":"
	if r.hasStop {
		s += strconv.Itoa(r.stop)
	}
	if r.hasStep {
		s += ":" + strconv.Itoa(r.step)
	}
	return s
}

// Slice returns a copy of the elements selected by one Range per axis.
//
// The result keeps every axis: an Index range yields an axis of extent one.
// A selection that is empty on any axis fails with ErrBadShape.
func (a *Array) Slice(ranges ...Range) (*Array, error) {
	if len(ranges) != len(a.shape) {
		return nil, fmt.Errorf("%w: %d ranges for %d axes", ErrRank, len(ranges), len(a.shape))
	}
	sel := make([][]int, len(ranges))
	shape := make([]int, len(ranges))
	for axis, r := range ranges {
		idx, err := r.Indices(a.shape[axis])
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", axis, err)
		}
		if len(idx) == 0 {
			return nil, fmt.Errorf("%w: range %s selects nothing on axis %d", ErrBadShape, r, axis)
		}
		sel[axis] = idx
		shape[axis] = len(idx)
	}

	out := New(shape...)
	pos := make([]int, len(shape))
	for k := range out.data {
		off := 0
		for axis, p := range pos {
			off += sel[axis][p] * a.strides[axis]
		}
		out.data[k] = a.data[off]
		// Last axis fastest, matching the row-major output.
		for axis := len(pos) - 1; axis >= 0; axis-- {
			pos[axis]++
			if pos[axis] < shape[axis] {
				break
			}
			pos[axis] = 0
		}
	}
	return out, nil
}

// Meshgrid broadcasts one-dimensional coordinate vectors onto their
// Cartesian product using matrix ("ij") indexing: in the i-th result,
// vectors[i] varies along axis i. Every result has shape
// (len(vectors[0]), ..., len(vectors[n-1])).
func Meshgrid(vectors ...[]float64) ([]*Array, error) {
	shape := make([]int, len(vectors))
	for i, v := range vectors {
		shape[i] = len(v)
	}
	if _, err := sizeOf(shape); err != nil {
		return nil, err
	}
	grids := make([]*Array, len(vectors))
	for i, v := range vectors {
		g := New(shape...)
		stride := g.strides[i]
		ext := shape[i]
		for k := range g.data {
			g.data[k] = v[(k/stride)%ext]
		}
		grids[i] = g
	}
	return grids, nil
}
