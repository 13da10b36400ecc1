package index

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/hypercube/internal/conv"
)

// FactIndex is the inverted index for a single dimension.
//
// It is not safe for concurrent mutation.
type FactIndex struct {
	dimension string

	// value -> positions
	postings map[string]*roaring.Bitmap

	// first-seen order of values
	order []string
}

// New creates an empty index for dimension.
func New(dimension string) *FactIndex {
	return &FactIndex{
		dimension: dimension,
		postings:  make(map[string]*roaring.Bitmap),
	}
}

// Dimension returns the dimension name the index was created for.
func (ix *FactIndex) Dimension() string {
	return ix.dimension
}

// Insert records that the cell at position carries value.
// The posting list is created on first use. Negative positions are ignored.
func (ix *FactIndex) Insert(value string, position int) {
	pos, err := conv.IntToUint32(position)
	if err != nil {
		return
	}
	bm, ok := ix.postings[value]
	if !ok {
		bm = roaring.New()
		ix.postings[value] = bm
		ix.order = append(ix.order, value)
	}
	bm.Add(pos)
}

// Get returns the posting list for value.
//
// The boolean is false when value was never inserted. The returned bitmap is
// owned by the index and must not be modified.
func (ix *FactIndex) Get(value string) (*roaring.Bitmap, bool) {
	bm, ok := ix.postings[value]
	return bm, ok
}

// Values returns the distinct values in first-seen order.
func (ix *FactIndex) Values() []string {
	return slices.Clone(ix.order)
}

// Len returns the number of distinct values.
func (ix *FactIndex) Len() int {
	return len(ix.order)
}

// Stats describes the size of a FactIndex.
type Stats struct {
	Dimension        string // Dimension name
	ValueCount       int    // Number of distinct values
	TotalCardinality uint64 // Sum of all posting list cardinalities
	MemoryBytes      uint64 // Estimated memory usage
}

// Stats returns statistics about the index.
func (ix *FactIndex) Stats() Stats {
	stats := Stats{
		Dimension:  ix.dimension,
		ValueCount: len(ix.order),
	}

	for value, bm := range ix.postings {
		stats.TotalCardinality += bm.GetCardinality()
		stats.MemoryBytes += bm.GetSizeInBytes() + uint64(len(value))
	}

	return stats
}
