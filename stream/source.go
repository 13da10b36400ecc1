package stream

import (
	"context"
	"io"

	"github.com/hupe1980/hypercube/record"
)

// Source yields records. Next returns io.EOF once the source is exhausted.
//
// A Source is consumed by a single goroutine.
type Source interface {
	Next(ctx context.Context) (record.Record, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) (record.Record, error)

// Next calls f.
func (f SourceFunc) Next(ctx context.Context) (record.Record, error) {
	return f(ctx)
}

// FromSlice returns a Source yielding records in order.
func FromSlice(records []record.Record) Source {
	i := 0
	return SourceFunc(func(ctx context.Context) (record.Record, error) {
		if err := ctx.Err(); err != nil {
			return record.Record{}, err
		}
		if i >= len(records) {
			return record.Record{}, io.EOF
		}
		r := records[i]
		i++
		return r, nil
	})
}

// FromChannel returns a Source yielding records received on ch until it is
// closed.
func FromChannel(ch <-chan record.Record) Source {
	return SourceFunc(func(ctx context.Context) (record.Record, error) {
		select {
		case <-ctx.Done():
			return record.Record{}, ctx.Err()
		case r, ok := <-ch:
			if !ok {
				return record.Record{}, io.EOF
			}
			return r, nil
		}
	})
}

// Concat returns a Source yielding the records of each source in turn.
// Sources implementing io.Closer are closed once exhausted.
func Concat(sources ...Source) Source {
	return &multiSource{sources: sources}
}

type multiSource struct {
	sources []Source
}

func (m *multiSource) Next(ctx context.Context) (record.Record, error) {
	for len(m.sources) > 0 {
		r, err := m.sources[0].Next(ctx)
		if err == io.EOF {
			if c, ok := m.sources[0].(io.Closer); ok {
				_ = c.Close()
			}
			m.sources = m.sources[1:]
			continue
		}
		return r, err
	}
	return record.Record{}, io.EOF
}

// Close closes every remaining source.
func (m *multiSource) Close() error {
	var first error
	for _, s := range m.sources {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	m.sources = nil
	return first
}

// Drain reads src until io.EOF and returns the records.
func Drain(ctx context.Context, src Source) ([]record.Record, error) {
	var out []record.Record
	for {
		r, err := src.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
}
