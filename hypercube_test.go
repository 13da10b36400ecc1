package hypercube

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hypercube/blobstore"
	"github.com/hupe1980/hypercube/calendar"
	"github.com/hupe1980/hypercube/cell"
	"github.com/hupe1980/hypercube/codec"
	"github.com/hupe1980/hypercube/cube"
	"github.com/hupe1980/hypercube/internal/compress"
	"github.com/hupe1980/hypercube/record"
	"github.com/hupe1980/hypercube/stream"
)

func genreRecords() []record.Record {
	return []record.Record{
		record.NewAt(1700000000, map[string]string{"genre": "rock"}, map[string]float64{"views": 3}),
		record.New(map[string]string{"genre": "jazz"}, map[string]float64{"views": 4}),
		record.NewAt(1700000060.5, map[string]string{"genre": "rock"}, map[string]float64{"views": 5}),
	}
}

func TestLoad(t *testing.T) {
	c, err := Load(context.Background(), stream.FromSlice(genreRecords()))
	require.NoError(t, err)

	require.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"rock", "jazz"}, c.FactValues("genre"))
	assert.Equal(t, 8.0, c.Slice(cube.Query{"genre": "rock"}).Sum(0).Get("views"))

	ms, ok := c.At(0).Timestamp()
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), ms)

	ms, ok = c.At(2).Timestamp()
	require.True(t, ok)
	assert.Equal(t, int64(1700000060500), ms)

	assert.False(t, c.At(1).HasTime())
}

func TestLoad_NilSource(t *testing.T) {
	_, err := Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilSource)
}

func TestLoad_Enrich(t *testing.T) {
	c, err := Load(context.Background(), stream.FromSlice(genreRecords()),
		WithEnrich(true),
		WithLocation(time.UTC),
	)
	require.NoError(t, err)

	first := c.At(0)
	assert.Equal(t, "2023", first.Facts[calendar.FactYear])
	assert.Equal(t, "11", first.Facts[calendar.FactMonth])
	assert.Equal(t, "14", first.Facts[calendar.FactDay])
	assert.Equal(t, "22", first.Facts[calendar.FactHour])
	assert.Equal(t, "2023-W46", first.Facts[calendar.FactISOWeek])
	assert.Equal(t, "Tue", first.Facts[calendar.FactDayOfWeek])

	// Untimed records pass through unchanged.
	assert.Equal(t, map[string]string{"genre": "jazz"}, c.At(1).Facts)

	tuesday := c.Slice(cube.Query{calendar.FactDayOfWeek: "Tue"})
	assert.Equal(t, 8.0, tuesday.Sum(0).Get("views"))
}

func TestLoad_ExpectedMeasures(t *testing.T) {
	c, err := Load(context.Background(), stream.FromSlice(nil), WithExpectedMeasures("views", "plays"))
	require.NoError(t, err)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, map[string]float64{"views": 0, "plays": 0}, c.Sum(0).Map())
}

func TestLoad_DecodeError(t *testing.T) {
	input := `{"facts":{"genre":"rock"},"measures":{"views":1}}
{"facts":"broken"}
{"facts":{"genre":"jazz"},"measures":{"views":2}}
`

	t.Run("fails", func(t *testing.T) {
		dec, err := stream.NewDecoder(strings.NewReader(input))
		require.NoError(t, err)

		_, err = Load(context.Background(), dec)
		require.Error(t, err)

		var ie *ErrIngest
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 1, ie.Read)

		var de *ErrDecode
		require.ErrorAs(t, err, &de)
		assert.Equal(t, 2, de.Line)

		var sde *stream.DecodeError
		assert.ErrorAs(t, err, &sde)
	})

	t.Run("skips", func(t *testing.T) {
		dec, err := stream.NewDecoder(strings.NewReader(input))
		require.NoError(t, err)

		mc := &BasicMetricsCollector{}
		c, err := Load(context.Background(), dec,
			WithSkipInvalid(true),
			WithMetricsCollector(mc),
		)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())

		stats := mc.GetStats()
		assert.Equal(t, int64(1), stats.IngestCount)
		assert.Equal(t, int64(2), stats.IngestRecords)
		assert.Equal(t, int64(1), stats.IngestSkipped)
	})
}

func TestLoad_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, stream.FromSlice(genreRecords()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_RateLimit(t *testing.T) {
	c, err := Load(context.Background(), stream.FromSlice(genreRecords()), WithRateLimit(1000, 10))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestExport_RoundTrip(t *testing.T) {
	c := cube.New().InsertMany(
		cell.NewAt(1500, map[string]string{"genre": "rock"}, map[string]float64{"views": 3}),
		cell.New(map[string]string{"genre": "jazz"}, map[string]float64{"views": 4.25}),
		cell.NewAt(1700000000123, map[string]string{"genre": "pop", "mood": "happy"}, map[string]float64{"views": 1}),
	)

	tests := []struct {
		name        string
		compression string
		codec       codec.Codec
		want        compress.Type
	}{
		{name: "plain", compression: "", codec: codec.Default, want: compress.None},
		{name: "lz4", compression: "lz4", codec: codec.JSON{}, want: compress.LZ4},
		{name: "zstd", compression: "zstd", codec: codec.GoJSON{}, want: compress.ZSTD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Export(context.Background(), c, &buf,
				WithCompression(tt.compression),
				WithCodec(tt.codec),
			))

			rc, typ, err := compress.NewAutoReader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, tt.want, typ)

			dec, err := stream.NewDecoder(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)

			loaded, err := Load(context.Background(), dec)
			require.NoError(t, err)
			assert.Equal(t, c.Serialize(), loaded.Serialize())
		})
	}
}

func TestExport_WritesSeconds(t *testing.T) {
	c := cube.New().Insert(cell.NewAt(2000, map[string]string{"a": "b"}, nil))

	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), c, &buf))

	assert.Contains(t, buf.String(), `"time":2`)
	assert.NotContains(t, buf.String(), `"time":2000`)

	// The cube itself keeps milliseconds.
	ms, _ := c.At(0).Timestamp()
	assert.Equal(t, int64(2000), ms)
}

func TestExport_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := Export(context.Background(), nil, &buf)
	assert.ErrorIs(t, err, ErrNilCube)

	err = Export(context.Background(), cube.New(), &buf, WithCompression("brotli"))
	assert.ErrorIs(t, err, compress.ErrUnknownType)
}

func TestLoadBlobs(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	put := func(name string, records []record.Record, compression string) {
		var buf bytes.Buffer
		c := cube.Deserialize(records)
		require.NoError(t, Export(ctx, c, &buf, WithCompression(compression)))
		require.NoError(t, store.Put(ctx, name, buf.Bytes()))
	}

	recs := genreRecords()
	put("plays/2024-01.jsonl.zst", recs[:1], "zstd")
	put("plays/2024-02.jsonl", recs[1:], "none")
	put("other/ignored.jsonl", recs, "none")

	c, err := LoadBlobs(ctx, store, "plays/")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"rock", "jazz"}, c.FactValues("genre"))
	assert.Equal(t, 12.0, c.Sum(0).Get("views"))
}

type failingStore struct {
	blobstore.BlobStore
}

func (failingStore) List(context.Context, string) ([]string, error) {
	return nil, errors.New("list denied")
}

func TestLoadBlobs_ListError(t *testing.T) {
	_, err := LoadBlobs(context.Background(), failingStore{}, "plays/")
	assert.ErrorContains(t, err, "list denied")
}

func TestTimed(t *testing.T) {
	c, err := Load(context.Background(), stream.FromSlice(genreRecords()))
	require.NoError(t, err)

	mc := &BasicMetricsCollector{}
	rock := Timed(context.Background(), "slice", func() *cube.Cube {
		return c.Slice(cube.Query{"genre": "rock"})
	}, WithMetricsCollector(mc))

	assert.Equal(t, 2, rock.Len())

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.QueryCount)
	assert.Equal(t, int64(2), stats.QueryCells)

	assert.Nil(t, Timed(context.Background(), "nil", func() *cube.Cube { return nil }, WithMetricsCollector(mc)))
	assert.Equal(t, int64(2), mc.GetStats().QueryCount)
}

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("json")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	_, err = CodecByName("xml")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}
