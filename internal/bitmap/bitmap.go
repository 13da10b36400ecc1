package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/hypercube/internal/conv"
)

// Range returns the set {0, 1, ..., n-1}. n <= 0 yields an empty set.
func Range(n int) *roaring.Bitmap {
	bm := roaring.New()
	if n > 0 {
		bm.AddRange(0, uint64(n))
	}
	return bm
}

// Of returns a set holding the given positions. Negative positions are ignored.
func Of(positions ...int) *roaring.Bitmap {
	bm := roaring.New()
	for _, p := range positions {
		if u, err := conv.IntToUint32(p); err == nil {
			bm.Add(u)
		}
	}
	return bm
}

// Intersect returns the AND of all sets as a new bitmap.
//
// Sets are combined in the given order and evaluation stops as soon as the
// running result is empty. A nil set is treated as empty. No sets yields an
// empty bitmap.
func Intersect(sets ...*roaring.Bitmap) *roaring.Bitmap {
	var result *roaring.Bitmap
	for _, s := range sets {
		if s == nil {
			return roaring.New()
		}
		if result == nil {
			result = s.Clone()
		} else {
			result.And(s)
		}
		if result.IsEmpty() {
			return result
		}
	}
	if result == nil {
		return roaring.New()
	}
	return result
}

// Union returns the OR of all sets as a new bitmap. Nil sets are skipped.
func Union(sets ...*roaring.Bitmap) *roaring.Bitmap {
	result := roaring.New()
	for _, s := range sets {
		if s != nil {
			result.Or(s)
		}
	}
	return result
}

// Difference returns base minus every excluded set as a new bitmap.
func Difference(base *roaring.Bitmap, exclude ...*roaring.Bitmap) *roaring.Bitmap {
	if base == nil {
		return roaring.New()
	}
	result := base.Clone()
	for _, s := range exclude {
		if s != nil {
			result.AndNot(s)
		}
	}
	return result
}

// Positions iterates over the set in ascending order as int positions.
func Positions(bm *roaring.Bitmap) iter.Seq[int] {
	return func(yield func(int) bool) {
		if bm == nil {
			return
		}
		it := bm.Iterator()
		for it.HasNext() {
			pos, err := conv.Uint32ToInt(it.Next())
			if err != nil || !yield(pos) {
				return
			}
		}
	}
}

// Len returns the cardinality of bm as an int.
func Len(bm *roaring.Bitmap) int {
	if bm == nil {
		return 0
	}
	return int(bm.GetCardinality())
}
