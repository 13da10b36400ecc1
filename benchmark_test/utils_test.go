package benchmark_test

import (
	"fmt"

	"github.com/hupe1980/hypercube/cube"
	"github.com/hupe1980/hypercube/record"
	"github.com/hupe1980/hypercube/testutil"
)

const benchSeed = 42

var (
	genres    = []string{"rock", "jazz", "pop", "classical", "hiphop", "metal", "folk", "blues"}
	countries = []string{"de", "us", "fr", "jp", "br", "in", "uk", "es", "it", "mx"}
)

func benchSpec(sparse bool) testutil.CellSpec {
	artists := make([]string, 500)
	for i := range artists {
		artists[i] = fmt.Sprintf("artist-%03d", i)
	}
	return testutil.CellSpec{
		Dimensions: map[string][]string{
			"genre":   genres,
			"country": countries,
			"artist":  artists,
		},
		Measures: []string{"views", "plays", "likes"},
		MaxValue: 1000,
		Sparse:   sparse,
		Timed:    true,
		TimeSpan: 365 * 24 * 3600 * 1000,
	}
}

func benchCube(n int) *cube.Cube {
	rng := testutil.NewRNG(benchSeed)
	return cube.New().InsertMany(rng.Cells(n, benchSpec(false))...)
}

// benchRecords returns records with times in seconds, as Load expects.
func benchRecords(n int) []record.Record {
	records := benchCube(n).Serialize()
	for i := range records {
		if records[i].Time != nil {
			s := *records[i].Time / 1000
			records[i].Time = &s
		}
	}
	return records
}
