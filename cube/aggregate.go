package cube

import (
	"github.com/hupe1980/hypercube/aggregate"
	"github.com/hupe1980/hypercube/cell"
	"github.com/hupe1980/hypercube/index"
)

// Sum returns the per-measure sum over all cells. With precision > 0 every
// value is rounded to that many significant figures before it is added.
//
// When no cell carries a measure the expected measures are returned as
// zeros.
func (c *Cube) Sum(precision int) *aggregate.Measures {
	m := cell.Aggregate(c.cells, aggregate.Sum(precision))
	if m.Len() == 0 {
		return aggregate.Zero(c.expected)
	}
	return m
}

// Avg returns Sum(precision) divided by count. count is the number of
// observation slots for the grain being averaged and may differ from Len. A
// zero count leaves the sums unchanged.
func (c *Cube) Avg(count float64, precision int) *aggregate.Measures {
	return aggregate.Avg(c.Sum(precision), count, precision)
}

// Stats describes the shape of a cube.
type Stats struct {
	Cells      int                 // Total cells
	Timed      int                 // Cells with a timestamp
	Dimensions []index.Stats       // One entry per dimension, sorted by name
	Measures   *aggregate.Measures // Number of cells carrying each measure
}

// Stats returns statistics about the cube.
func (c *Cube) Stats() Stats {
	stats := Stats{
		Cells:    len(c.cells),
		Measures: cell.Aggregate(c.cells, aggregate.Count()),
	}
	for _, cl := range c.cells {
		if cl.HasTime() {
			stats.Timed++
		}
	}
	for _, name := range c.FactNames() {
		stats.Dimensions = append(stats.Dimensions, c.indices[name].Stats())
	}
	return stats
}
