package graphkeep

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAdd is called after each add operation.
	RecordAdd(duration time.Duration, err error)

	// RecordRemove is called after each remove operation.
	// removed counts every item removed including the cascade, notified counts
	// ItemRemoved calls.
	RecordRemove(removed, notified int, duration time.Duration, err error)

	// RecordMutate is called after each mutate operation.
	RecordMutate(duration time.Duration, err error)

	// RecordCompact is called after each compaction.
	// moved counts renumbered keys, notified counts ItemMoved calls.
	RecordCompact(moved, notified int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)              {}
func (NoopMetricsCollector) RecordRemove(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordMutate(time.Duration, error)           {}
func (NoopMetricsCollector) RecordCompact(int, int, time.Duration)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	AddCount          atomic.Int64
	AddErrors         atomic.Int64
	AddTotalNanos     atomic.Int64
	RemoveCount       atomic.Int64
	RemoveErrors      atomic.Int64
	RemovedItems      atomic.Int64
	RemovedNotified   atomic.Int64
	MutateCount       atomic.Int64
	MutateErrors      atomic.Int64
	CompactCount      atomic.Int64
	CompactMoved      atomic.Int64
	CompactNotified   atomic.Int64
	CompactTotalNanos atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(removed, notified int, _ time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
		return
	}
	b.RemovedItems.Add(int64(removed))
	b.RemovedNotified.Add(int64(notified))
}

// RecordMutate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMutate(_ time.Duration, err error) {
	b.MutateCount.Add(1)
	if err != nil {
		b.MutateErrors.Add(1)
	}
}

// RecordCompact implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompact(moved, notified int, duration time.Duration) {
	b.CompactCount.Add(1)
	b.CompactMoved.Add(int64(moved))
	b.CompactNotified.Add(int64(notified))
	b.CompactTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:        b.AddCount.Load(),
		AddErrors:       b.AddErrors.Load(),
		AddAvgNanos:     b.getAvgAddNanos(),
		RemoveCount:     b.RemoveCount.Load(),
		RemoveErrors:    b.RemoveErrors.Load(),
		RemovedItems:    b.RemovedItems.Load(),
		RemovedNotified: b.RemovedNotified.Load(),
		MutateCount:     b.MutateCount.Load(),
		MutateErrors:    b.MutateErrors.Load(),
		CompactCount:    b.CompactCount.Load(),
		CompactMoved:    b.CompactMoved.Load(),
		CompactNotified: b.CompactNotified.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgAddNanos() int64 {
	count := b.AddCount.Load()
	if count == 0 {
		return 0
	}
	return b.AddTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount        int64
	AddErrors       int64
	AddAvgNanos     int64
	RemoveCount     int64
	RemoveErrors    int64
	RemovedItems    int64
	RemovedNotified int64
	MutateCount     int64
	MutateErrors    int64
	CompactCount    int64
	CompactMoved    int64
	CompactNotified int64
}
