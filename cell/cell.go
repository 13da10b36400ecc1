// Package cell defines the atomic data point of a cube.
package cell

import (
	"cmp"
	"maps"

	"github.com/hupe1980/hypercube/aggregate"
	"github.com/hupe1980/hypercube/internal/conv"
)

// Cell is one observation: an optional timestamp, the dimension values it is
// tagged with and its numeric measures.
//
// Cells are shared by reference between a cube and every cube derived from
// it. Query operations never modify them.
type Cell struct {
	// Time is the observation time in milliseconds since the Unix epoch.
	// Nil means the cell has no timestamp.
	Time *int64

	// Facts maps dimension name to dimension value.
	Facts map[string]string

	// Measures maps measure name to value.
	Measures map[string]float64
}

// New creates a cell from facts and measures without a timestamp.
func New(facts map[string]string, measures map[string]float64) *Cell {
	return &Cell{Facts: facts, Measures: measures}
}

// NewAt creates a cell with a timestamp in milliseconds.
func NewAt(ms int64, facts map[string]string, measures map[string]float64) *Cell {
	return &Cell{Time: &ms, Facts: facts, Measures: measures}
}

// Value returns the measure called name, or 0 when it is absent or not a
// finite number.
func (c *Cell) Value(name string) float64 {
	if c == nil {
		return 0
	}
	v, ok := c.Measures[name]
	if !ok || !conv.IsNumber(v) {
		return 0
	}
	return v
}

// Fact returns the value of dimension and whether the cell carries it.
func (c *Cell) Fact(dimension string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.Facts[dimension]
	return v, ok
}

// HasTime reports whether the cell carries a timestamp.
func (c *Cell) HasTime() bool {
	return c != nil && c.Time != nil
}

// Timestamp returns the timestamp in milliseconds.
func (c *Cell) Timestamp() (int64, bool) {
	if !c.HasTime() {
		return 0, false
	}
	return *c.Time, true
}

// Clone returns a deep copy.
func (c *Cell) Clone() *Cell {
	if c == nil {
		return nil
	}
	out := &Cell{
		Facts:    maps.Clone(c.Facts),
		Measures: maps.Clone(c.Measures),
	}
	if c.Time != nil {
		t := *c.Time
		out.Time = &t
	}
	return out
}

// Aggregate folds the measures of all cells with fn.
//
// See aggregate.Fold for the ordering of the result. Nil cells are skipped.
func Aggregate(cells []*Cell, fn aggregate.FoldFunc) *aggregate.Measures {
	return aggregate.Fold(func(yield func(map[string]float64) bool) {
		for _, c := range cells {
			if c == nil {
				continue
			}
			if !yield(c.Measures) {
				return
			}
		}
	}, fn)
}

// ComparisonFn returns a comparator ordering cells by the measure called
// name, ascending unless descending is set. It is meant for
// slices.SortStableFunc, which keeps equal cells in input order.
func ComparisonFn(name string, descending bool) func(a, b *Cell) int {
	return func(a, b *Cell) int {
		r := cmp.Compare(a.Value(name), b.Value(name))
		if descending {
			return -r
		}
		return r
	}
}
