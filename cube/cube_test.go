package cube

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hypercube/cell"
)

func facts(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func views(v float64) map[string]float64 {
	return map[string]float64{"views": v}
}

// genreCube builds the drama/comedy fixture used across tests.
func genreCube(opts ...Option) *Cube {
	return New(opts...).InsertMany(
		cell.New(facts("genre", "drama"), views(10)),
		cell.New(facts("genre", "comedy"), views(5)),
	)
}

func TestCube_Insert(t *testing.T) {
	c := New()
	a := cell.New(facts("genre", "rock", "year", "2024"), views(1))
	b := cell.New(facts("genre", "jazz"), views(2))

	c.Insert(a).Insert(nil).Insert(b)

	require.Equal(t, 2, c.Len())
	assert.Same(t, a, c.At(0))
	assert.Same(t, b, c.At(1))
	assert.Nil(t, c.At(2))
	assert.Nil(t, c.At(-1))

	bm, ok := c.indices["genre"].Get("jazz")
	require.True(t, ok)
	assert.Equal(t, []uint32{1}, bm.ToArray())
}

func TestCube_CellsIsCopy(t *testing.T) {
	c := genreCube()
	cells := c.Cells()
	cells[0] = nil

	assert.NotNil(t, c.At(0))
}

func TestCube_FactNames(t *testing.T) {
	c := New()
	assert.Empty(t, c.FactNames())

	c.Insert(cell.New(facts("year", "2024", "genre", "rock"), nil))
	assert.Equal(t, []string{"genre", "year"}, c.FactNames())

	// Cached until the next insert.
	assert.False(t, c.namesDirty)
	c.Insert(cell.New(facts("country", "de"), nil))
	assert.True(t, c.namesDirty)
	assert.Equal(t, []string{"country", "genre", "year"}, c.FactNames())

	names := c.FactNames()
	names[0] = "changed"
	assert.Equal(t, "country", c.FactNames()[0])
}

func TestCube_FactValues(t *testing.T) {
	c := New().InsertMany(
		cell.New(facts("genre", "rock"), nil),
		cell.New(facts("genre", ""), nil),
		cell.New(facts("genre", "jazz"), nil),
		cell.New(facts("genre", "rock"), nil),
		cell.New(facts("year", "2024"), nil),
	)

	assert.Equal(t, []string{"rock", "jazz"}, c.FactValues("genre"))
	assert.Equal(t, []string{"2024"}, c.FactValues("year"))
	assert.Nil(t, c.FactValues("unknown"))
}

func TestCube_Positions(t *testing.T) {
	c := New().InsertMany(
		cell.New(facts("genre", "rock", "country", "de"), nil),
		cell.New(facts("genre", "jazz", "country", "de"), nil),
		cell.New(facts("genre", "rock", "country", "fr"), nil),
		cell.New(facts("genre", "rock", "country", "de"), nil),
	)

	tests := []struct {
		name  string
		query Query
		want  []uint32
	}{
		{name: "empty query", query: Query{}, want: []uint32{0, 1, 2, 3}},
		{name: "nil query", query: nil, want: []uint32{0, 1, 2, 3}},
		{name: "single", query: Query{"genre": "rock"}, want: []uint32{0, 2, 3}},
		{name: "and", query: Query{"genre": "rock", "country": "de"}, want: []uint32{0, 3}},
		{name: "unknown dimension", query: Query{"genre": "rock", "mood": "sad"}, want: []uint32{}},
		{name: "unknown value", query: Query{"genre": "metal"}, want: []uint32{}},
		{name: "disjoint", query: Query{"genre": "jazz", "country": "fr"}, want: []uint32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.positions(tt.query).ToArray())
		})
	}
}

func TestCube_PositionsDoNotAliasIndex(t *testing.T) {
	c := genreCube()

	hits := c.positions(Query{"genre": "drama"})
	hits.Add(1)

	bm, _ := c.indices["genre"].Get("drama")
	assert.Equal(t, []uint32{0}, bm.ToArray())
}

func TestCube_ExpectedMeasures(t *testing.T) {
	c := New(WithExpectedMeasures("views", "clicks"))
	assert.Equal(t, []string{"views", "clicks"}, c.ExpectedMeasures())

	derived := c.Slice(Query{"genre": "x"})
	assert.Equal(t, []string{"views", "clicks"}, derived.ExpectedMeasures())
}

func TestCube_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := genreCube(WithLogger(logger), WithLogger(nil))
	c.Slice(Query{"genre": "drama"})

	assert.Contains(t, buf.String(), "cube slice")
	assert.Contains(t, buf.String(), "cells=1")
}
