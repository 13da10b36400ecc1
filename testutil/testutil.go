package testutil

import (
	"maps"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/hypercube/cell"
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
	r.rand = rand.New(rand.NewSource(r.seed))
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

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// CellSpec controls the shape of generated cells.
type CellSpec struct {
	// Dimensions maps dimension name to the values it may take.
	Dimensions map[string][]string

	// Measures lists the measure names. Values are integers in [0, MaxValue).
	Measures []string

	// MaxValue bounds measure values. Zero means 100.
	MaxValue int

	// Sparse drops each dimension from a cell with probability 1/4.
	Sparse bool

	// Timed attaches a timestamp in [0, TimeSpan) milliseconds.
	Timed    bool
	TimeSpan int64
}

// Cells generates n random cells following spec.
//
// Integer measure values keep sums exact regardless of summation order.
func (r *RNG) Cells(n int, spec CellSpec) []*cell.Cell {
	maxValue := spec.MaxValue
	if maxValue <= 0 {
		maxValue = 100
	}
	span := spec.TimeSpan
	if span <= 0 {
		span = 1
	}
	dims := slices.Sorted(maps.Keys(spec.Dimensions))

	cells := make([]*cell.Cell, n)
	for i := range cells {
		facts := make(map[string]string, len(dims))
		for _, d := range dims {
			values := spec.Dimensions[d]
			if len(values) == 0 || (spec.Sparse && r.Intn(4) == 0) {
				continue
			}
			facts[d] = values[r.Intn(len(values))]
		}

		measures := make(map[string]float64, len(spec.Measures))
		for _, m := range spec.Measures {
			measures[m] = float64(r.Intn(maxValue))
		}

		c := cell.New(facts, measures)
		if spec.Timed {
			ms := int64(r.Float64() * float64(span))
			c.Time = &ms
		}
		cells[i] = c
	}
	return cells
}
