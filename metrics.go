package hypercube

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    ingested prometheus.Counter
//	    queries  *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordQuery(op string, cells int, d time.Duration) {
//	    p.queries.WithLabelValues(op).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordIngest is called after each load.
	// read is the number of records read, skipped the number dropped as
	// invalid, duration the total time taken.
	RecordIngest(read, skipped int, duration time.Duration)

	// RecordQuery is called after each timed cube operation.
	// cells is the size of the resulting cube.
	RecordQuery(op string, cells int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIngest(int, int, time.Duration)   {}
func (NoopMetricsCollector) RecordQuery(string, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IngestCount      atomic.Int64
	IngestRecords    atomic.Int64
	IngestSkipped    atomic.Int64
	IngestTotalNanos atomic.Int64
	QueryCount       atomic.Int64
	QueryCells       atomic.Int64
	QueryTotalNanos  atomic.Int64
}

// RecordIngest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIngest(read, skipped int, duration time.Duration) {
	b.IngestCount.Add(1)
	b.IngestRecords.Add(int64(read))
	b.IngestSkipped.Add(int64(skipped))
	b.IngestTotalNanos.Add(duration.Nanoseconds())
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ string, cells int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryCells.Add(int64(cells))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IngestCount:    b.IngestCount.Load(),
		IngestRecords:  b.IngestRecords.Load(),
		IngestSkipped:  b.IngestSkipped.Load(),
		IngestAvgNanos: avgNanos(b.IngestTotalNanos.Load(), b.IngestCount.Load()),
		QueryCount:     b.QueryCount.Load(),
		QueryCells:     b.QueryCells.Load(),
		QueryAvgNanos:  avgNanos(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IngestCount    int64
	IngestRecords  int64
	IngestSkipped  int64
	IngestAvgNanos int64
	QueryCount     int64
	QueryCells     int64
	QueryAvgNanos  int64
}
