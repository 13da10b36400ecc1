package aggregate

import (
	"iter"
	"maps"
	"math"
	"slices"

	"github.com/hupe1980/hypercube/internal/conv"
)

// FoldFunc combines an incoming value into the running aggregate of one
// measure. seeded is false on the first occurrence of the measure, in which
// case acc carries no information.
type FoldFunc func(acc float64, seeded bool, incoming float64) float64

// Fold applies fn over every measure of every set.
//
// Names within one set are visited in ascending order. The result keys are
// the union of all names in first-seen order. Non-finite incoming values are
// folded as 0. An empty sequence yields an empty set.
func Fold(sets iter.Seq[map[string]float64], fn FoldFunc) *Measures {
	out := New(0)
	if sets == nil || fn == nil {
		return out
	}
	for set := range sets {
		for _, name := range slices.Sorted(maps.Keys(set)) {
			v := set[name]
			if !conv.IsNumber(v) {
				v = 0
			}
			acc, seeded := out.Lookup(name)
			out.Set(name, fn(acc, seeded, v))
		}
	}
	return out
}

// Sum returns a FoldFunc that adds values. The first value of a measure seeds
// the aggregate. With precision > 0 every incoming value is rounded to that
// many significant figures before it is added.
func Sum(precision int) FoldFunc {
	return func(acc float64, seeded bool, v float64) float64 {
		if precision > 0 {
			v = RoundSig(v, precision)
		}
		if !seeded {
			return v
		}
		return acc + v
	}
}

// Min returns a FoldFunc keeping the smallest value.
func Min() FoldFunc {
	return func(acc float64, seeded bool, v float64) float64 {
		if !seeded || v < acc {
			return v
		}
		return acc
	}
}

// Max returns a FoldFunc keeping the largest value.
func Max() FoldFunc {
	return func(acc float64, seeded bool, v float64) float64 {
		if !seeded || v > acc {
			return v
		}
		return acc
	}
}

// Count returns a FoldFunc counting the occurrences of each measure.
func Count() FoldFunc {
	return func(acc float64, seeded bool, _ float64) float64 {
		if !seeded {
			return 1
		}
		return acc + 1
	}
}

// Avg divides every measure of m by count and returns the result as a new
// set. count is the number of observation slots for the grain, which need not
// equal the number of cells. A zero or non-finite count leaves the values
// unchanged. With precision > 0 the quotients are rounded to that many
// significant figures.
func Avg(m *Measures, count float64, precision int) *Measures {
	out := New(m.Len())
	divide := count != 0 && conv.IsNumber(count)
	for name, v := range m.All() {
		if divide {
			v /= count
		}
		if precision > 0 {
			v = RoundSig(v, precision)
		}
		out.Set(name, v)
	}
	return out
}

// RoundSig rounds v to precision significant figures. precision <= 0 and
// non-finite or zero values are returned unchanged.
func RoundSig(v float64, precision int) float64 {
	if precision <= 0 || v == 0 || !conv.IsNumber(v) {
		return v
	}
	magnitude := int(math.Ceil(math.Log10(math.Abs(v))))
	shift := precision - magnitude
	if shift >= 0 {
		p := math.Pow10(shift)
		return math.Round(v*p) / p
	}
	p := math.Pow10(-shift)
	return math.Round(v/p) * p
}
