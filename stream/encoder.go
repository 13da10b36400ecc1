package stream

import (
	"bufio"
	"io"

	"github.com/hupe1980/hypercube/codec"
	"github.com/hupe1980/hypercube/internal/compress"
	"github.com/hupe1980/hypercube/record"
)

// Encoder writes records as JSON Lines, optionally compressed.
type Encoder struct {
	cw    io.WriteCloser
	bw    *bufio.Writer
	codec codec.Codec
	count int
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) (*Encoder, error) {
	o := applyOptions(opts)

	cw, err := compress.NewWriter(w, o.compression)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		cw:    cw,
		bw:    bufio.NewWriter(cw),
		codec: o.codec,
	}, nil
}

// Encode writes one record. It has the signature of a Pipeline sink.
func (e *Encoder) Encode(r record.Record) error {
	if e.cw == nil {
		return ErrClosed
	}
	data, err := e.codec.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := e.bw.Write(data); err != nil {
		return err
	}
	e.count++
	return e.bw.WriteByte('\n')
}

// Count returns the number of records written.
func (e *Encoder) Count() int {
	return e.count
}

// Close flushes buffered data and the compression frame. It does not close
// the underlying writer.
func (e *Encoder) Close() error {
	if e.cw == nil {
		return nil
	}
	cw := e.cw
	e.cw = nil
	if err := e.bw.Flush(); err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}
