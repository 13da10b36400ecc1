// Package bitmap provides the position-set algebra used when answering cube
// queries.
//
// Positions are cell offsets stored in Roaring bitmaps. The helpers here never
// modify their arguments, so posting lists owned by a fact index can be passed
// in directly:
//
//	hits := bitmap.Intersect(byGenre, byYear)
//	rest := bitmap.Difference(bitmap.Range(n), hits)
//	for pos := range bitmap.Positions(rest) {
//	    // ascending cell positions
//	}
package bitmap
