package rawmem

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
//	    allocCounter prometheus.Counter
//	    mappedGauge  prometheus.Gauge
//	}
//
//	func (p *PrometheusCollector) RecordAlloc(size int64, err error) {
//	    p.allocCounter.Inc()
//	    // ... record error state, size, etc.
//	}
type MetricsCollector interface {
	// RecordMap is called after each mapping attempt.
	// size is the requested region size, duration the time taken,
	// err is nil if successful.
	RecordMap(size int64, duration time.Duration, err error)

	// RecordUnmap is called after each unmapping.
	RecordUnmap(size int64, err error)

	// RecordSync is called after each write-back of a mapped region.
	RecordSync(size int64, duration time.Duration, err error)

	// RecordLoad is called after each residency hint.
	RecordLoad(size int64, duration time.Duration, err error)

	// RecordAlloc is called after each allocation attempt.
	// size is the requested payload size, err is nil if successful.
	RecordAlloc(size int64, err error)

	// RecordFree is called after each release of an allocation.
	// size is the payload size recorded at allocation time.
	RecordFree(size int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMap(int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordUnmap(int64, error)               {}
func (NoopMetricsCollector) RecordSync(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordAlloc(int64, error)               {}
func (NoopMetricsCollector) RecordFree(int64)                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MapCount       atomic.Int64
	MapErrors      atomic.Int64
	MapTotalNanos  atomic.Int64
	MappedBytes    atomic.Int64
	UnmapCount     atomic.Int64
	SyncCount      atomic.Int64
	SyncErrors     atomic.Int64
	SyncTotalNanos atomic.Int64
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	AllocCount     atomic.Int64
	AllocErrors    atomic.Int64
	AllocatedBytes atomic.Int64
	FreeCount      atomic.Int64
}

// RecordMap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMap(size int64, duration time.Duration, err error) {
	b.MapCount.Add(1)
	b.MapTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MapErrors.Add(1)
		return
	}
	b.MappedBytes.Add(size)
}

// RecordUnmap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnmap(size int64, err error) {
	b.UnmapCount.Add(1)
	if err == nil {
		b.MappedBytes.Add(-size)
	}
}

// RecordSync implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSync(size int64, duration time.Duration, err error) {
	b.SyncCount.Add(1)
	b.SyncTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SyncErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(size int64, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(size int64, err error) {
	b.AllocCount.Add(1)
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.AllocatedBytes.Add(size)
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(size int64) {
	b.FreeCount.Add(1)
	b.AllocatedBytes.Add(-size)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MapCount:       b.MapCount.Load(),
		MapErrors:      b.MapErrors.Load(),
		MapAvgNanos:    b.getAvgMapNanos(),
		MappedBytes:    b.MappedBytes.Load(),
		UnmapCount:     b.UnmapCount.Load(),
		SyncCount:      b.SyncCount.Load(),
		SyncErrors:     b.SyncErrors.Load(),
		SyncAvgNanos:   b.getAvgSyncNanos(),
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		AllocCount:     b.AllocCount.Load(),
		AllocErrors:    b.AllocErrors.Load(),
		AllocatedBytes: b.AllocatedBytes.Load(),
		FreeCount:      b.FreeCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgMapNanos() int64 {
	count := b.MapCount.Load()
	if count == 0 {
		return 0
	}
	return b.MapTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgSyncNanos() int64 {
	count := b.SyncCount.Load()
	if count == 0 {
		return 0
	}
	return b.SyncTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MapCount       int64
	MapErrors      int64
	MapAvgNanos    int64
	MappedBytes    int64
	UnmapCount     int64
	SyncCount      int64
	SyncErrors     int64
	SyncAvgNanos   int64
	LoadCount      int64
	LoadErrors     int64
	AllocCount     int64
	AllocErrors    int64
	AllocatedBytes int64
	FreeCount      int64
}
