package hypercube

import (
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/hypercube/codec"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	enrich           bool
	location         *time.Location
	rate             float64
	burst            int
	skipInvalid      bool
	expected         []string
	codec            codec.Codec
	compression      string
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		location:         time.Local,
		codec:            codec.Default,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures Load, Export and Timed.
type Option func(*options)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified after loads and timed
// queries. A nil collector disables metrics.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithEnrich adds calendar facts (year, month, day, hour, ISO week, weekday)
// to every timed record during Load. Record times are read as seconds.
func WithEnrich(enable bool) Option {
	return func(o *options) {
		o.enrich = enable
	}
}

// WithLocation sets the time zone used by WithEnrich. Default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithRateLimit caps ingestion at perSec records per second.
// perSec <= 0 disables limiting.
func WithRateLimit(perSec float64, burst int) Option {
	return func(o *options) {
		o.rate = perSec
		o.burst = burst
	}
}

// WithSkipInvalid makes Load drop undecodable records instead of failing.
func WithSkipInvalid(skip bool) Option {
	return func(o *options) {
		o.skipInvalid = skip
	}
}

// WithExpectedMeasures sets the measures reported as zero when an aggregate
// runs over an empty cube.
func WithExpectedMeasures(names ...string) Option {
	return func(o *options) {
		o.expected = slices.Clone(names)
	}
}

// WithCodec configures the codec used to encode exported records.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the compression of exported streams: "none", "lz4"
// or "zstd". Loading detects compression on its own.
func WithCompression(name string) Option {
	return func(o *options) {
		o.compression = name
	}
}

// CodecByName resolves a codec name as accepted in configuration files.
func CodecByName(name string) (codec.Codec, error) {
	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownCodec, name, codec.Names())
	}
	return c, nil
}
