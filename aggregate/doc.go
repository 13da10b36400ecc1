// Package aggregate provides the fold routines used to summarize measure sets.
//
// A fold walks a sequence of measure sets and combines every incoming value
// into a running per-measure result through a FoldFunc. The FoldFunc is told
// whether a prior value exists for the measure, so seeding and accumulation
// are the caller's choice:
//
//	total := aggregate.Fold(sets, aggregate.Sum(0))
//	mean := aggregate.Avg(total, 24, 3) // 24 hourly slots, 3 significant figures
//
// Results are returned as *Measures, an insertion-ordered measure set whose
// keys appear in the order they were first seen.
package aggregate
