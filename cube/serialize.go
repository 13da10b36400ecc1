package cube

import (
	"maps"
	"math"

	"github.com/hupe1980/hypercube/cell"
	"github.com/hupe1980/hypercube/record"
)

// Serialize converts every cell into a record. The cell timestamp is written
// unchanged, in milliseconds, and only when present.
func (c *Cube) Serialize() []record.Record {
	out := make([]record.Record, 0, len(c.cells))
	for _, cl := range c.cells {
		r := record.Record{
			Facts:    maps.Clone(cl.Facts),
			Measures: maps.Clone(cl.Measures),
		}
		if ms, ok := cl.Timestamp(); ok {
			t := float64(ms)
			r.Time = &t
		}
		out = append(out, r)
	}
	return out
}

// Deserialize builds a cube from records, one cell per record.
//
// A record time is read as seconds and stored as milliseconds, so it is
// multiplied by 1000. Serialize writes milliseconds; callers round-tripping
// timestamps must convert between the two.
func Deserialize(records []record.Record, opts ...Option) *Cube {
	c := New(opts...)
	c.cells = make([]*cell.Cell, 0, len(records))
	for _, r := range records {
		c.Insert(CellFromRecord(r))
	}
	c.logger.Debug("cube deserialize", "records", len(records), "cells", c.Len())
	return c
}

// CellFromRecord converts one record the way Deserialize does.
func CellFromRecord(r record.Record) *cell.Cell {
	cl := &cell.Cell{
		Facts:    maps.Clone(r.Facts),
		Measures: maps.Clone(r.Measures),
	}
	if r.HasTime() {
		ms := int64(math.Round(*r.Time * 1000))
		cl.Time = &ms
	}
	return cl
}
