package cube

import (
	"cmp"
	"slices"

	"github.com/hupe1980/hypercube/cell"
	"github.com/hupe1980/hypercube/internal/bitmap"
)

// Slice returns the cells matching every constraint of q, in their original
// order. An empty query returns all cells.
func (c *Cube) Slice(q Query) *Cube {
	out := c.fromPositions(c.positions(q))
	c.logger.Debug("cube slice", "query", q, "cells", out.Len())
	return out
}

// Dice returns the cells not matched by Slice(q), in their original order.
func (c *Cube) Dice(q Query) *Cube {
	rest := bitmap.Difference(bitmap.Range(len(c.cells)), c.positions(q))
	out := c.fromPositions(rest)
	c.logger.Debug("cube dice", "query", q, "cells", out.Len())
	return out
}

// SliceTime returns the cells with a timestamp t where from <= t < to.
// Cells without a timestamp are excluded.
func (c *Cube) SliceTime(from, to int64) *Cube {
	return c.SliceBy(func(cl *cell.Cell, _ int) bool {
		t, ok := cl.Timestamp()
		return ok && t >= from && t < to
	})
}

// SliceBy returns the cells for which pred reports true.
func (c *Cube) SliceBy(pred func(cl *cell.Cell, pos int) bool) *Cube {
	out := c.derive(0)
	if pred == nil {
		return out
	}
	for pos, cl := range c.cells {
		if pred(cl, pos) {
			out.Insert(cl)
		}
	}
	return out
}

// ForEach calls fn for every cell in order and returns the receiver.
func (c *Cube) ForEach(fn func(cl *cell.Cell, pos int)) *Cube {
	if fn == nil {
		return c
	}
	for pos, cl := range c.cells {
		fn(cl, pos)
	}
	return c
}

// Group is one partition produced by Groups or SortedGroups.
type Group struct {
	Value string
	Cube  *Cube
}

// Groups partitions the cube by the values of dimension, in first-seen value
// order. Cells without the dimension belong to no group.
func (c *Cube) Groups(dimension string) []Group {
	ix, ok := c.indices[dimension]
	if !ok {
		return nil
	}
	groups := make([]Group, 0, ix.Len())
	for _, value := range ix.Values() {
		bm, _ := ix.Get(value)
		groups = append(groups, Group{Value: value, Cube: c.fromPositions(bm)})
	}
	c.logger.Debug("cube group", "dimension", dimension, "groups", len(groups))
	return groups
}

// GroupBy is Groups keyed by dimension value.
func (c *Cube) GroupBy(dimension string) map[string]*Cube {
	groups := c.Groups(dimension)
	out := make(map[string]*Cube, len(groups))
	for _, g := range groups {
		out[g.Value] = g.Cube
	}
	return out
}

// SortedGroups groups the cube by dimension and orders the groups by
// descending sum of measure. Groups with equal sums keep first-seen order.
// With limit > 0 only the first limit groups are returned.
func (c *Cube) SortedGroups(dimension, measure string, limit int) []Group {
	type ranked struct {
		Group
		total float64
	}

	groups := c.Groups(dimension)
	rs := make([]ranked, 0, len(groups))
	for _, g := range groups {
		rs = append(rs, ranked{Group: g, total: g.Cube.Sum(0).Get(measure)})
	}
	slices.SortStableFunc(rs, func(a, b ranked) int {
		return cmp.Compare(b.total, a.total)
	})
	if limit > 0 && limit < len(rs) {
		rs = rs[:limit]
	}

	out := make([]Group, 0, len(rs))
	for _, r := range rs {
		// Key by the dimension value of the group's first cell.
		if v, ok := r.Cube.At(0).Fact(dimension); ok {
			r.Value = v
		}
		out = append(out, r.Group)
	}
	return out
}

// SortBy is SortedGroups keyed by dimension value. Map iteration does not
// preserve the ranking; use SortedGroups when order matters.
func (c *Cube) SortBy(dimension, measure string, limit int) map[string]*Cube {
	groups := c.SortedGroups(dimension, measure, limit)
	out := make(map[string]*Cube, len(groups))
	for _, g := range groups {
		out[g.Value] = g.Cube
	}
	return out
}

// SliceTop orders the cells by ascending score and returns the first limit of
// them. Equal scores keep insertion order. A limit <= 0 or beyond the cell
// count returns every cell. score receives the cell's measures and must not
// modify them. A nil score keeps insertion order.
func (c *Cube) SliceTop(limit int, score func(measures map[string]float64) float64) *Cube {
	type scored struct {
		cl    *cell.Cell
		score float64
	}

	ss := make([]scored, len(c.cells))
	for i, cl := range c.cells {
		ss[i].cl = cl
		if score != nil {
			ss[i].score = score(cl.Measures)
		}
	}
	slices.SortStableFunc(ss, func(a, b scored) int {
		return cmp.Compare(a.score, b.score)
	})
	if limit > 0 && limit < len(ss) {
		ss = ss[:limit]
	}

	out := c.derive(len(ss))
	for _, s := range ss {
		out.Insert(s.cl)
	}
	c.logger.Debug("cube top", "limit", limit, "cells", out.Len())
	return out
}

// Merge inserts every cell of other into the receiver, in order, and returns
// the receiver.
func (c *Cube) Merge(other *Cube) *Cube {
	if other == nil {
		return c
	}
	// Capture the cells first so merging a cube into itself terminates.
	for _, cl := range other.Cells() {
		c.Insert(cl)
	}
	return c
}
