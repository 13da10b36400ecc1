package cube

import (
	"log/slog"
	"slices"
)

type options struct {
	expected []string
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option configures a Cube.
type Option func(*options)

// WithExpectedMeasures sets the measure names reported as zero when an
// aggregate runs over an empty cube.
func WithExpectedMeasures(names ...string) Option {
	return func(o *options) {
		o.expected = slices.Clone(names)
	}
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
