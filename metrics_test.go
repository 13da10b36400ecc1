package hypercube

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}

	assert.Equal(t, BasicMetricsStats{}, mc.GetStats())

	mc.RecordIngest(10, 2, 4*time.Millisecond)
	mc.RecordIngest(5, 0, 2*time.Millisecond)
	mc.RecordQuery("slice", 3, time.Microsecond)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.IngestCount)
	assert.Equal(t, int64(15), stats.IngestRecords)
	assert.Equal(t, int64(2), stats.IngestSkipped)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.IngestAvgNanos)
	assert.Equal(t, int64(1), stats.QueryCount)
	assert.Equal(t, int64(3), stats.QueryCells)
	assert.Equal(t, time.Microsecond.Nanoseconds(), stats.QueryAvgNanos)
}

func TestBasicMetricsCollector_Concurrent(t *testing.T) {
	mc := &BasicMetricsCollector{}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				mc.RecordQuery("group", 1, time.Nanosecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), mc.GetStats().QueryCount)
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	mc.RecordIngest(1, 1, time.Second)
	mc.RecordQuery("top", 1, time.Second)
}
