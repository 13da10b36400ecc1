// Package testutil provides testing utilities for hypercube.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG and helpers for generating random cells with a
// controlled set of dimensions and measures.
//
// # Random Cell Generation
//
//	rng := testutil.NewRNG(seed)
//	cells := rng.Cells(1000, testutil.CellSpec{
//	    Dimensions: map[string][]string{"genre": {"rock", "jazz"}},
//	    Measures:   []string{"plays"},
//	})
package testutil
