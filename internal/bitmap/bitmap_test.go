package bitmap

import (
	"slices"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
)

func collect(bm *roaring.Bitmap) []int {
	return slices.Collect(Positions(bm))
}

func TestRange(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, collect(Range(4)))
	assert.Empty(t, collect(Range(0)))
	assert.Empty(t, collect(Range(-3)))
}

func TestOf(t *testing.T) {
	assert.Equal(t, []int{1, 4, 9}, collect(Of(9, 1, 4, -2, 1)))
}

func TestIntersect(t *testing.T) {
	a := Of(1, 2, 3, 5, 8)
	b := Of(2, 3, 5, 7)
	c := Of(3, 5, 11)

	tests := []struct {
		name string
		sets []*roaring.Bitmap
		want []int
	}{
		{name: "none", sets: nil, want: nil},
		{name: "single", sets: []*roaring.Bitmap{a}, want: []int{1, 2, 3, 5, 8}},
		{name: "two", sets: []*roaring.Bitmap{a, b}, want: []int{2, 3, 5}},
		{name: "three", sets: []*roaring.Bitmap{a, b, c}, want: []int{3, 5}},
		{name: "reordered", sets: []*roaring.Bitmap{c, a, b}, want: []int{3, 5}},
		{name: "nil member", sets: []*roaring.Bitmap{a, nil}, want: nil},
		{name: "disjoint", sets: []*roaring.Bitmap{Of(1), Of(2), a}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(Intersect(tt.sets...))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntersect_DoesNotModifyInputs(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(2)

	hits := Intersect(a, b)
	hits.Add(100)

	assert.Equal(t, []int{1, 2, 3}, collect(a))
	assert.Equal(t, []int{2}, collect(b))
}

func TestUnion(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4}, collect(Union(Of(1, 3), nil, Of(2, 4, 3))))
	assert.Empty(t, collect(Union()))
}

func TestDifference(t *testing.T) {
	base := Range(6)

	assert.Equal(t, []int{0, 2, 5}, collect(Difference(base, Of(1, 3), nil, Of(4))))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, collect(base))
	assert.Empty(t, collect(Difference(nil, Of(1))))
}

func TestPositions_StopsEarly(t *testing.T) {
	var seen []int
	for p := range Positions(Range(10)) {
		seen = append(seen, p)
		if p == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Empty(t, collect(nil))
}

func TestLen(t *testing.T) {
	assert.Equal(t, 3, Len(Of(4, 5, 6)))
	assert.Equal(t, 0, Len(nil))
}
