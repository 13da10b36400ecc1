package cube

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/hypercube/cell"
	"github.com/hupe1980/hypercube/index"
	"github.com/hupe1980/hypercube/internal/bitmap"
)

// Query constrains dimensions to exact values. All constraints must hold.
type Query map[string]string

// Cube is an indexed collection of cells.
//
// The zero value is not usable; create cubes with New or Deserialize.
type Cube struct {
	cells   []*cell.Cell
	indices map[string]*index.FactIndex

	// Sorted dimension names, recomputed when namesDirty is set.
	names      []string
	namesDirty bool

	expected []string
	logger   *slog.Logger
}

// New creates an empty cube.
func New(opts ...Option) *Cube {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cube{
		indices:  make(map[string]*index.FactIndex),
		expected: o.expected,
		logger:   o.logger,
	}
}

// derive creates an empty cube sharing the receiver's configuration.
func (c *Cube) derive(capacity int) *Cube {
	return &Cube{
		cells:    make([]*cell.Cell, 0, capacity),
		indices:  make(map[string]*index.FactIndex),
		expected: c.expected,
		logger:   c.logger,
	}
}

// Insert appends a cell and indexes its facts. Nil cells are ignored.
func (c *Cube) Insert(cl *cell.Cell) *Cube {
	if cl == nil {
		return c
	}

	pos := len(c.cells)
	c.namesDirty = true

	for dim, value := range cl.Facts {
		ix, ok := c.indices[dim]
		if !ok {
			ix = index.New(dim)
			c.indices[dim] = ix
		}
		ix.Insert(value, pos)
	}

	c.cells = append(c.cells, cl)
	return c
}

// InsertMany inserts cells in order.
func (c *Cube) InsertMany(cells ...*cell.Cell) *Cube {
	for _, cl := range cells {
		c.Insert(cl)
	}
	return c
}

// Len returns the number of cells.
func (c *Cube) Len() int {
	return len(c.cells)
}

// Cells returns the cells in insertion order. The slice is a copy; the cells
// are shared.
func (c *Cube) Cells() []*cell.Cell {
	return slices.Clone(c.cells)
}

// At returns the cell at pos, or nil when pos is out of range.
func (c *Cube) At(pos int) *cell.Cell {
	if pos < 0 || pos >= len(c.cells) {
		return nil
	}
	return c.cells[pos]
}

// ExpectedMeasures returns the configured expected measure names.
func (c *Cube) ExpectedMeasures() []string {
	return slices.Clone(c.expected)
}

// FactNames returns the sorted dimension names seen across all cells.
func (c *Cube) FactNames() []string {
	if c.namesDirty || c.names == nil {
		c.names = slices.Sorted(maps.Keys(c.indices))
		c.namesDirty = false
	}
	return slices.Clone(c.names)
}

// FactValues returns the distinct non-empty values of dimension in
// first-seen order. An unknown dimension yields nil.
func (c *Cube) FactValues(dimension string) []string {
	ix, ok := c.indices[dimension]
	if !ok {
		return nil
	}
	return slices.DeleteFunc(ix.Values(), func(v string) bool { return v == "" })
}

// positions resolves q to the set of matching cell positions.
//
// Constraints are applied in ascending dimension order. The first one seeds
// the hit set from a copy of its posting list, the rest intersect it, and an
// empty hit set ends evaluation. An unknown dimension or value matches
// nothing. An empty query matches every cell.
func (c *Cube) positions(q Query) *roaring.Bitmap {
	if len(q) == 0 {
		return bitmap.Range(len(c.cells))
	}

	postings := make([]*roaring.Bitmap, 0, len(q))
	for _, dim := range slices.Sorted(maps.Keys(q)) {
		ix, ok := c.indices[dim]
		if !ok {
			return roaring.New()
		}
		bm, ok := ix.Get(q[dim])
		if !ok {
			return roaring.New()
		}
		postings = append(postings, bm)
	}

	return bitmap.Intersect(postings...)
}

// fromPositions builds a derived cube from the cells at the given positions.
func (c *Cube) fromPositions(bm *roaring.Bitmap) *Cube {
	out := c.derive(bitmap.Len(bm))
	for pos := range bitmap.Positions(bm) {
		out.Insert(c.cells[pos])
	}
	return out
}
