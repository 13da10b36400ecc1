package stream

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/hupe1980/hypercube/codec"
	"github.com/hupe1980/hypercube/internal/compress"
	"github.com/hupe1980/hypercube/record"
)

// Decoder reads records from a JSON Lines stream.
//
// Blank lines are skipped. A line that fails to decode is reported as a
// *DecodeError and reading may continue with the next call to Next.
type Decoder struct {
	rc      io.ReadCloser
	scanner *bufio.Scanner
	codec   codec.Codec
	name    string
	line    int
	closed  bool
}

// NewDecoder creates a Decoder reading from r. LZ4 and ZSTD framing is
// detected from the stream header.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	o := applyOptions(opts)

	rc, _, err := compress.NewAutoReader(r)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(rc)
	// The scanner accepts tokens up to max(maxLineSize, cap(buf)).
	scanner.Buffer(make([]byte, 0, min(64*1024, o.maxLineSize)), o.maxLineSize)

	return &Decoder{
		rc:      rc,
		scanner: scanner,
		codec:   o.codec,
		name:    o.name,
	}, nil
}

// Next returns the next record.
func (d *Decoder) Next(ctx context.Context) (record.Record, error) {
	if d.closed {
		return record.Record{}, ErrClosed
	}
	for {
		if err := ctx.Err(); err != nil {
			return record.Record{}, err
		}
		if !d.scanner.Scan() {
			if err := d.scanner.Err(); err != nil {
				return record.Record{}, err
			}
			return record.Record{}, io.EOF
		}
		d.line++

		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var r record.Record
		if err := d.codec.Unmarshal(line, &r); err != nil {
			return record.Record{}, &DecodeError{Name: d.name, Line: d.line, Err: err}
		}
		return r, nil
	}
}

// Close releases decompression resources. It does not close the underlying
// reader.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.rc.Close()
}
