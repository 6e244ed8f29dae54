// Package library implements the tabulated-chemistry container: named
// independent-variable dimensions and the multidimensional property
// library defined over their grid.
//
// A structured library is a Cartesian grid; dimension i varies along axis i
// of every property array:
//
//	x, _ := library.NewDimension("x", []float64{0, 1, 2})
//	y, _ := library.NewDimension("y", []float64{10, 20})
//	lib, _ := library.New(x, y)        // lib.Shape() == [3 2]
//	_ = lib.SetProperty("z", ndarray.New(3, 2))
//	sub, _ := lib.Slice(ndarray.Index(1), ndarray.All()) // sub.Shape() == [1 2]
//
// An unstructured library is a point cloud: every dimension holds one
// coordinate per point and all property arrays are flat.
//
// # Ownership
//
// Dimensions are values. A Library keeps private copies and binds their
// grids once at construction; the caller's Dimension is never modified.
// Property assignment copies its input, while Property returns the stored
// array itself so that large tables can be read without copying.
//
// # Errors
//
// Failures are reported as *ConstructionError, *ShapeMismatchError,
// *UnsupportedOperationError, *LookupError and *IndexError, each matching
// its sentinel (ErrConstruction, ErrShapeMismatch, ErrUnsupported,
// ErrNotFound, ErrIndex) with errors.Is.
package library
