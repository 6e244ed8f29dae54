// Package ndarray provides the dense float64 N-dimensional array used for
// tabulated library grids and property data.
//
// Storage is a single row-major ("C" order) backing slice. Every
// constructor and transform copies its input; the only alias-returning
// accessor is [Array.Data].
//
// Slicing follows Python slice semantics per axis (see [Range]) but always
// preserves the rank of the array: an [Index] selection becomes an axis of
// length one. Use [Array.Squeeze] to drop such axes explicitly.
//
//	a := ndarray.New(3, 2)
//	_ = a.Set(1.5, 1, 1)
//	b, _ := a.Slice(ndarray.Index(1), ndarray.All())
//	fmt.Println(b.Shape()) // [1 2]
package ndarray
