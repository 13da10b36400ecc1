package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/hypercube/record"
)

// Transform modifies a record in place before delivery. Returning an error
// rejects the record.
type Transform func(r *record.Record) error

// Stats summarizes a pipeline run.
type Stats struct {
	Read      int           // Records read from the source
	Delivered int           // Records accepted by the sink
	Skipped   int           // Records dropped as invalid
	Duration  time.Duration // Wall time of the run
}

// Pipeline drains a Source into a sink.
type Pipeline struct {
	limiter     *rate.Limiter
	skipInvalid bool
	transform   Transform
	buffer      int
	logger      *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithRateLimit caps delivery at perSec records per second with the given
// burst. perSec <= 0 disables limiting.
func WithRateLimit(perSec float64, burst int) PipelineOption {
	return func(p *Pipeline) {
		if perSec <= 0 {
			p.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// WithSkipInvalid makes the pipeline drop records that fail to decode or are
// rejected by the transform, counting them in Stats.Skipped, instead of
// failing the run.
func WithSkipInvalid(skip bool) PipelineOption {
	return func(p *Pipeline) {
		p.skipInvalid = skip
	}
}

// WithTransform sets a transform applied to every record before delivery.
func WithTransform(t Transform) PipelineOption {
	return func(p *Pipeline) {
		p.transform = t
	}
}

// WithBuffer sets the capacity of the channel between reader and sink.
func WithBuffer(n int) PipelineOption {
	return func(p *Pipeline) {
		if n >= 0 {
			p.buffer = n
		}
	}
}

// WithLogger sets the logger for skipped records and run summaries.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		buffer: 256,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reads src until io.EOF and passes every record to sink.
//
// sink is called from one goroutine, in source order. The run stops at the
// first error from the source, the transform or the sink, or when ctx is
// canceled; Stats reflects the work done up to that point.
func (p *Pipeline) Run(ctx context.Context, src Source, sink func(record.Record) error) (Stats, error) {
	var stats Stats
	if src == nil || sink == nil {
		return stats, errors.New("stream: nil source or sink")
	}

	start := time.Now()
	records := make(chan record.Record, p.buffer)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(records)
		for {
			r, err := src.Next(gctx)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				var de *DecodeError
				if p.skipInvalid && errors.As(err, &de) {
					stats.Skipped++
					p.logger.Debug("skipping undecodable record", "error", err)
					continue
				}
				return err
			}
			stats.Read++

			if p.transform != nil {
				if err := p.transform(&r); err != nil {
					if p.skipInvalid {
						stats.Skipped++
						p.logger.Debug("skipping rejected record", "error", err)
						continue
					}
					return fmt.Errorf("transform record %d: %w", stats.Read, err)
				}
			}

			if p.limiter != nil {
				if err := p.limiter.Wait(gctx); err != nil {
					return err
				}
			}

			select {
			case records <- r:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		for r := range records {
			if err := sink(r); err != nil {
				return err
			}
			stats.Delivered++
		}
		return nil
	})

	err := g.Wait()
	stats.Duration = time.Since(start)

	p.logger.Debug("pipeline finished",
		"read", stats.Read,
		"delivered", stats.Delivered,
		"skipped", stats.Skipped,
		"duration", stats.Duration,
	)

	return stats, err
}
