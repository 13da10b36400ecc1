// Package record defines the plain record format cubes are serialized to and
// loaded from.
//
// The JSON shape is
//
//	{"time": 1700000000, "facts": {"genre": "rock"}, "measures": {"plays": 3}}
//
// where "time" is optional. Decoding is lenient: values of the wrong type are
// coerced or dropped instead of failing the record.
package record

import (
	"bytes"
	"errors"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/hypercube/internal/conv"
)

var (
	// ErrMissingFacts is returned when a record carries no facts object.
	ErrMissingFacts = errors.New("record: missing facts")

	// ErrMissingTime is returned when a record carries no numeric time.
	ErrMissingTime = errors.New("record: missing time")
)

// Record is the interchange form of a cell.
type Record struct {
	Time     *float64           `json:"time,omitempty"`
	Facts    map[string]string  `json:"facts"`
	Measures map[string]float64 `json:"measures"`
}

// New creates a record without a time.
func New(facts map[string]string, measures map[string]float64) Record {
	return Record{Facts: facts, Measures: measures}
}

// NewAt creates a record with the given time.
func NewAt(t float64, facts map[string]string, measures map[string]float64) Record {
	return Record{Time: &t, Facts: facts, Measures: measures}
}

// HasTime reports whether the record carries a finite numeric time.
func (r Record) HasTime() bool {
	return r.Time != nil && conv.IsNumber(*r.Time)
}

// Validate reports whether the record carries facts.
func (r Record) Validate() error {
	if r.Facts == nil {
		return ErrMissingFacts
	}
	return nil
}

type wireRecord struct {
	Time     gojson.RawMessage            `json:"time"`
	Facts    map[string]any               `json:"facts"`
	Measures map[string]gojson.RawMessage `json:"measures"`
}

// UnmarshalJSON decodes a record leniently.
//
// A non-numeric time is treated as absent. Fact values that are numbers or
// booleans are converted to strings; other non-string values are dropped.
// Measure values that are not finite numbers are dropped. Unknown keys are
// ignored.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := gojson.Unmarshal(data, &w); err != nil {
		return err
	}

	*r = Record{}

	if t, ok := number(w.Time); ok {
		r.Time = &t
	}

	if w.Facts != nil {
		r.Facts = make(map[string]string, len(w.Facts))
		for k, v := range w.Facts {
			if s, ok := factString(v); ok {
				r.Facts[k] = s
			}
		}
	}

	if w.Measures != nil {
		r.Measures = make(map[string]float64, len(w.Measures))
		for k, raw := range w.Measures {
			if f, ok := number(raw); ok {
				r.Measures[k] = f
			}
		}
	}

	return nil
}

func number(raw gojson.RawMessage) (float64, bool) {
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return 0, false
	}
	var f float64
	if err := gojson.Unmarshal(raw, &f); err != nil || !conv.IsNumber(f) {
		return 0, false
	}
	return f, true
}

var null = []byte("null")

func factString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	default:
		if f, ok := conv.ToFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return "", false
	}
}
