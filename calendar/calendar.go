// Package calendar derives date dimensions from record timestamps.
//
// AddDateFacts tags each timed record with its year, month, day, hour, ISO
// week and weekday so cubes can be sliced and grouped by calendar units
// without scanning timestamps.
package calendar

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/hupe1980/hypercube/record"
)

// Fact names set by Enrich.
const (
	FactYear      = "year"
	FactMonth     = "month"
	FactDay       = "day"
	FactHour      = "hour"
	FactISOWeek   = "iso_week"
	FactDayOfWeek = "day_of_week"
)

var (
	// ErrMissingTime is reported for records without a numeric time.
	ErrMissingTime = record.ErrMissingTime

	// ErrMissingFacts is reported for records without a facts object.
	ErrMissingFacts = record.ErrMissingFacts
)

// RecordError ties an enrichment failure to the record's position in the
// batch.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("calendar: record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

type options struct {
	loc  *time.Location
	unit time.Duration
}

// Option configures enrichment.
type Option func(*options)

// WithLocation sets the time zone the wall clock is read in.
// The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithUnit sets the unit of record times. The default is time.Millisecond.
func WithUnit(unit time.Duration) Option {
	return func(o *options) {
		if unit > 0 {
			o.unit = unit
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{loc: time.Local, unit: time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AddDateFacts enriches every record in place.
//
// Records without a time or without facts are left untouched and reported as
// *RecordError values joined into the returned error; the remaining records
// are still enriched.
func AddDateFacts(records []record.Record, opts ...Option) error {
	o := applyOptions(opts)

	var errs []error
	for i := range records {
		if err := enrich(&records[i], o); err != nil {
			errs = append(errs, &RecordError{Index: i, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Enrich adds the date facts to a single record.
func Enrich(r *record.Record, opts ...Option) error {
	return enrich(r, applyOptions(opts))
}

// Enricher returns a record transform that enriches timed records and passes
// records without a time or facts through unchanged.
func Enricher(opts ...Option) func(*record.Record) error {
	o := applyOptions(opts)
	return func(r *record.Record) error {
		err := enrich(r, o)
		if errors.Is(err, ErrMissingTime) || errors.Is(err, ErrMissingFacts) {
			return nil
		}
		return err
	}
}

func enrich(r *record.Record, o options) error {
	if !r.HasTime() {
		return ErrMissingTime
	}
	if err := r.Validate(); err != nil {
		return err
	}

	t := toTime(*r.Time, o.unit).In(o.loc)
	year, week := t.ISOWeek()

	r.Facts[FactYear] = strconv.Itoa(t.Year())
	r.Facts[FactMonth] = strconv.Itoa(int(t.Month()))
	r.Facts[FactDay] = strconv.Itoa(t.Day())
	r.Facts[FactHour] = strconv.Itoa(t.Hour())
	r.Facts[FactISOWeek] = fmt.Sprintf("%04d-W%02d", year, week)
	r.Facts[FactDayOfWeek] = t.Weekday().String()[:3]
	return nil
}

func toTime(v float64, unit time.Duration) time.Time {
	ns := v * float64(unit)
	if ns > math.MaxInt64 || ns < math.MinInt64 {
		ms := v * float64(unit) / float64(time.Millisecond)
		return time.UnixMilli(int64(ms))
	}
	return time.Unix(0, int64(ns))
}
