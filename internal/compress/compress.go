// Package compress wraps record streams in optional LZ4 or ZSTD framing.
package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None indicates no compression.
	None Type = 0
	// LZ4 indicates LZ4 frame compression (fast, good for hot data).
	LZ4 Type = 1
	// ZSTD indicates ZSTD frame compression (better ratio, good for archives).
	ZSTD Type = 2
)

// ErrUnknownType is returned for unsupported compression names or values.
var ErrUnknownType = errors.New("compress: unknown type")

var (
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// String returns the name accepted by ParseType.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType parses a compression name. The empty string means None.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder(w io.Writer) (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		enc := v.(*zstd.Encoder)
		enc.Reset(w)
		return enc, nil
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			zstdDecoderPool.Put(dec)
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r)
}

// Detect peeks at the stream header and reports its compression type.
// The reader is not advanced.
func Detect(br *bufio.Reader) Type {
	head, _ := br.Peek(4)
	switch {
	case bytes.Equal(head, zstdMagic):
		return ZSTD
	case bytes.Equal(head, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// NewWriter returns a writer compressing into w with t.
// Closing it flushes the compressed frame but does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case ZSTD:
		enc, err := getZstdEncoder(w)
		if err != nil {
			return nil, err
		}
		return &zstdWriter{enc: enc}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}

// NewReader returns a reader decompressing r with t.
// Closing it releases decoder resources but does not close r.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case ZSTD:
		dec, err := getZstdDecoder(r)
		if err != nil {
			return nil, err
		}
		return &zstdReader{dec: dec}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}

// NewAutoReader detects the compression of r and returns a matching reader.
func NewAutoReader(r io.Reader) (io.ReadCloser, Type, error) {
	br := bufio.NewReader(r)
	t := Detect(br)
	rc, err := NewReader(br, t)
	return rc, t, err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type zstdWriter struct {
	enc *zstd.Encoder
}

func (z *zstdWriter) Write(p []byte) (int, error) {
	if z.enc == nil {
		return 0, io.ErrClosedPipe
	}
	return z.enc.Write(p)
}

func (z *zstdWriter) Close() error {
	if z.enc == nil {
		return nil
	}
	err := z.enc.Close()
	zstdEncoderPool.Put(z.enc)
	z.enc = nil
	return err
}

type zstdReader struct {
	dec *zstd.Decoder
}

func (z *zstdReader) Read(p []byte) (int, error) {
	if z.dec == nil {
		return 0, io.ErrClosedPipe
	}
	return z.dec.Read(p)
}

func (z *zstdReader) Close() error {
	if z.dec == nil {
		return nil
	}
	zstdDecoderPool.Put(z.dec)
	z.dec = nil
	return nil
}
