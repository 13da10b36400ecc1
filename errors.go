package hypercube

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hypercube/blobstore"
	"github.com/hupe1980/hypercube/stream"
)

var (
	// ErrNilSource is returned when Load is called without a source.
	ErrNilSource = errors.New("source must not be nil")

	// ErrNilCube is returned when Export is called without a cube.
	ErrNilCube = errors.New("cube must not be nil")

	// ErrUnknownCodec is returned when a codec name is not registered.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrNotFound is returned when a blob does not exist.
	ErrNotFound = blobstore.ErrNotFound
)

// ErrIngest indicates a load that stopped before its source was exhausted.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrIngest struct {
	Read    int
	Skipped int
	cause   error
}

func (e *ErrIngest) Error() string {
	return fmt.Sprintf("ingest failed after %d records (%d skipped): %v", e.Read, e.Skipped, e.cause)
}

func (e *ErrIngest) Unwrap() error { return e.cause }

// ErrDecode indicates a record that could not be decoded.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrDecode struct {
	Source string
	Line   int
	cause  error
}

func (e *ErrDecode) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("decode error on line %d", e.Line)
	}
	return fmt.Sprintf("decode error in %s on line %d", e.Source, e.Line)
}

func (e *ErrDecode) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var de *stream.DecodeError
	if errors.As(err, &de) {
		return &ErrDecode{Source: de.Name, Line: de.Line, cause: err}
	}

	return err
}
