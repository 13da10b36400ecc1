// Package cube implements an in-memory hypercube: a collection of
// fact-tagged cells with one inverted index per dimension.
//
// Cells are added with Insert. Every query operation (Slice, Dice, SliceTime,
// SliceBy, GroupBy, SortBy, SliceTop) returns a new derived cube holding
// references to a subset of the receiver's cells, with its own cell sequence
// and indices. Merge is the only operation that modifies its receiver.
//
//	c := cube.New(cube.WithExpectedMeasures("views"))
//	c.Insert(cell.New(map[string]string{"genre": "drama"}, map[string]float64{"views": 10}))
//	c.Insert(cell.New(map[string]string{"genre": "comedy"}, map[string]float64{"views": 5}))
//
//	drama := c.Slice(cube.Query{"genre": "drama"}).Sum(0) // {views: 10}
//
// # Concurrency
//
// A Cube has a single writer. Readers may run concurrently with each other
// only while no Insert or Merge is in progress.
//
// # Errors
//
// Query operations do not fail. Unknown dimensions and values produce empty
// cubes, and missing or non-numeric measures read as zero.
package cube
