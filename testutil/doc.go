// Package testutil provides testing utilities for spitfire.
//
// This package is intended for use in tests only. It provides a seeded,
// thread-safe RNG and builders for random libraries.
//
//	rng := testutil.NewRNG(seed)
//	lib := rng.Library(testutil.LibraryShape{
//		Dims:       []int{8, 5},
//		Properties: []string{"temperature", "density"},
//	})
package testutil
