package hypercube

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/hypercube/blobstore"
	"github.com/hupe1980/hypercube/calendar"
	"github.com/hupe1980/hypercube/cube"
	"github.com/hupe1980/hypercube/internal/compress"
	"github.com/hupe1980/hypercube/record"
	"github.com/hupe1980/hypercube/stream"
)

// Load drains src into a new cube, one cell per record.
//
// Record times are read as seconds, as in cube.Deserialize. The source is not
// closed.
func Load(ctx context.Context, src stream.Source, opts ...Option) (*cube.Cube, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	o := applyOptions(opts)

	c := cube.New(
		cube.WithExpectedMeasures(o.expected...),
		cube.WithLogger(o.logger.Logger),
	)

	popts := []stream.PipelineOption{
		stream.WithSkipInvalid(o.skipInvalid),
		stream.WithLogger(o.logger.Logger),
	}
	if o.rate > 0 {
		popts = append(popts, stream.WithRateLimit(o.rate, o.burst))
	}

	enriched := 0
	if o.enrich {
		enrich := calendar.Enricher(
			calendar.WithUnit(time.Second),
			calendar.WithLocation(o.location),
		)
		popts = append(popts, stream.WithTransform(func(r *record.Record) error {
			if err := enrich(r); err != nil {
				return err
			}
			if r.HasTime() {
				enriched++
			}
			return nil
		}))
	}

	stats, err := stream.NewPipeline(popts...).Run(ctx, src, func(r record.Record) error {
		c.Insert(cube.CellFromRecord(r))
		return nil
	})

	o.metricsCollector.RecordIngest(stats.Read, stats.Skipped, stats.Duration)
	o.logger.LogIngest(ctx, stats.Read, stats.Skipped, stats.Duration, err)
	if o.enrich {
		o.logger.LogEnrich(ctx, enriched, nil)
	}

	if err != nil {
		return nil, &ErrIngest{Read: stats.Read, Skipped: stats.Skipped, cause: translateError(err)}
	}
	return c, nil
}

// LoadBlobs loads every record stream stored below prefix, in name order.
func LoadBlobs(ctx context.Context, store blobstore.BlobStore, prefix string, opts ...Option) (*cube.Cube, error) {
	o := applyOptions(opts)

	src, err := stream.FromBlobs(ctx, store, prefix, stream.WithCodec(o.codec))
	if err != nil {
		o.logger.WithSource(prefix).ErrorContext(ctx, "open blobs failed", "error", err)
		return nil, err
	}
	return Load(ctx, src, opts...)
}

// Export writes every cell of c to w as a record stream.
//
// Times are written in seconds so the stream loads back into an identical
// cube.
func Export(ctx context.Context, c *cube.Cube, w io.Writer, opts ...Option) error {
	if c == nil {
		return ErrNilCube
	}
	o := applyOptions(opts)

	typ, err := compress.ParseType(o.compression)
	if err != nil {
		return err
	}

	enc, err := stream.NewEncoder(w, stream.WithCodec(o.codec), stream.WithCompression(typ))
	if err != nil {
		return err
	}

	records := c.Serialize()
	for i := range records {
		if records[i].Time != nil {
			s := *records[i].Time / 1000
			records[i].Time = &s
		}
	}

	start := time.Now()
	_, runErr := stream.NewPipeline(stream.WithLogger(o.logger.Logger)).
		Run(ctx, stream.FromSlice(records), enc.Encode)
	closeErr := enc.Close()
	if runErr != nil {
		return fmt.Errorf("export: %w", runErr)
	}
	if closeErr != nil {
		return fmt.Errorf("export: %w", closeErr)
	}

	o.logger.WithCount(enc.Count()).DebugContext(ctx, "export completed",
		"compression", typ.String(),
		"duration", time.Since(start),
	)
	return nil
}

// Timed runs a cube operation and reports the size of its result and the
// time taken to the configured metrics collector and logger.
func Timed(ctx context.Context, op string, fn func() *cube.Cube, opts ...Option) *cube.Cube {
	o := applyOptions(opts)

	start := time.Now()
	result := fn()
	d := time.Since(start)

	cells := 0
	if result != nil {
		cells = result.Len()
	}
	o.metricsCollector.RecordQuery(op, cells, d)
	o.logger.LogQuery(ctx, op, cells, d)
	return result
}
