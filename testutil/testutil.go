package testutil

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/wandadars/spitfire/library"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.FillUniformRange(dst, 0, 1)
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float64()*span
	}
}

// FillGaussian fills dst with values from a standard normal distribution.
func (r *RNG) FillGaussian(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.NormFloat64()
	}
}

// Grid returns n distinct values in [lo, hi), sorted ascending.
// The values are jittered around an even spacing so they never repeat.
func (r *RNG) Grid(n int, lo, hi float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	step := (hi - lo) / float64(n)
	values := make([]float64, n)
	for i := range values {
		values[i] = lo + step*(float64(i)+0.1+0.8*r.rand.Float64())
	}
	return values
}

// Samples returns n values in [lo, hi) in random order, possibly repeating.
func (r *RNG) Samples(n int, lo, hi float64) []float64 {
	values := make([]float64, n)
	r.FillUniformRange(values, lo, hi)
	return values
}

// LibraryShape describes a random library.
type LibraryShape struct {
	// Dims holds the point count per dimension. For an unstructured
	// library only the first entry is used; every dimension shares it.
	Dims []int
	// NDim is the dimension count of an unstructured library.
	NDim         int
	Unstructured bool
	Properties   []string
	Attributes   map[string]any
}

// DimensionNames are the names given to the dimensions of random libraries,
// in order.
var DimensionNames = []string{
	"mixture_fraction",
	"dissipation_rate",
	"enthalpy_defect",
	"pressure",
	"progress_variable",
}

// Library builds a random library that satisfies every construction
// invariant. It panics on invalid shapes.
func (r *RNG) Library(shape LibraryShape) *library.Library {
	var dims []library.Dimension
	if shape.Unstructured {
		if len(shape.Dims) == 0 {
			panic("testutil: unstructured library needs a point count")
		}
		for i := range shape.NDim {
			d, err := library.NewUnstructuredDimension(dimName(i), r.Samples(shape.Dims[0], 0, 1))
			if err != nil {
				panic(err)
			}
			dims = append(dims, d)
		}
	} else {
		for i, n := range shape.Dims {
			d, err := library.NewDimension(dimName(i), r.Grid(n, 0, 1))
			if err != nil {
				panic(err)
			}
			dims = append(dims, d)
		}
	}

	lib, err := library.New(dims...)
	if err != nil {
		panic(err)
	}
	for _, name := range shape.Properties {
		data := make([]float64, lib.Size())
		r.FillGaussian(data)
		if err := lib.SetPropertyData(name, data); err != nil {
			panic(err)
		}
	}
	keys := make([]string, 0, len(shape.Attributes))
	for k := range shape.Attributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		lib.SetExtraAttribute(k, shape.Attributes[k])
	}
	return lib
}

func dimName(i int) string {
	if i < len(DimensionNames) {
		return DimensionNames[i]
	}
	return fmt.Sprintf("dim_%d", i)
}
