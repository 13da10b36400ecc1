package stream

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by sources and encoders used after Close.
var ErrClosed = errors.New("stream: closed")

// DecodeError reports a line of a record stream that could not be decoded.
// Decoding continues with the next line.
type DecodeError struct {
	Name string // Blob name, if known
	Line int    // 1-based line number
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("stream: %s:%d: %v", e.Name, e.Line, e.Err)
	}
	return fmt.Sprintf("stream: line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
