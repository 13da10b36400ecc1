// Package index provides the per-dimension inverted index of a cube.
//
// A FactIndex maps every value observed for one dimension to the ascending
// set of cell positions carrying that value. Posting lists are Roaring
// bitmaps, so the sets stay compact and support fast AND/ANDNOT when several
// dimensions are constrained at once.
//
// The index is append-only. Positions are assigned by the owning cube in
// insertion order, which keeps every posting list sorted without extra work.
package index
