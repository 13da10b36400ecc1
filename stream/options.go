package stream

import (
	"github.com/hupe1980/hypercube/codec"
	"github.com/hupe1980/hypercube/internal/compress"
)

const (
	defaultMaxLineSize = 1 << 20
	defaultConcurrency = 4
)

type options struct {
	codec       codec.Codec
	compression compress.Type
	maxLineSize int
	concurrency int
	name        string
}

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		compression: compress.None,
		maxLineSize: defaultMaxLineSize,
		concurrency: defaultConcurrency,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures decoders, encoders and blob sources.
type Option func(*options)

// WithCodec sets the codec used for each line. A nil codec is ignored.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression sets the compression written by an Encoder.
// Decoders detect compression on their own.
func WithCompression(t compress.Type) Option {
	return func(o *options) {
		o.compression = t
	}
}

// WithMaxLineSize sets the longest line a Decoder accepts.
func WithMaxLineSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineSize = n
		}
	}
}

// WithConcurrency sets how many blobs FromBlobs fetches at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithName sets the name reported in decode errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
