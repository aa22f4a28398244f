package docgo

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
//	    executeCounter   prometheus.Counter
//	    executeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordExecute(matched int, duration time.Duration, err error) {
//	    p.executeCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordExecute is called after each query execution.
	// matched is the number of documents returned, duration is the total
	// time taken, err is nil if successful.
	RecordExecute(matched int, duration time.Duration, err error)

	// RecordReevaluate is called after each membership re-evaluation.
	// duration is the total time taken, err is nil if successful.
	RecordReevaluate(duration time.Duration, err error)

	// RecordPlanCache is called on every query-plan lookup.
	// hit reports whether a cached plan was reused.
	RecordPlanCache(hit bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordExecute(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordReevaluate(time.Duration, error)   {}
func (NoopMetricsCollector) RecordPlanCache(bool)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ExecuteCount         atomic.Int64
	ExecuteErrors        atomic.Int64
	ExecuteTotalNanos    atomic.Int64
	MatchedTotal         atomic.Int64
	ReevaluateCount      atomic.Int64
	ReevaluateErrors     atomic.Int64
	ReevaluateTotalNanos atomic.Int64
	PlanCacheHits        atomic.Int64
	PlanCacheMisses      atomic.Int64
}

// RecordExecute implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExecute(matched int, duration time.Duration, err error) {
	b.ExecuteCount.Add(1)
	b.ExecuteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExecuteErrors.Add(1)
	} else {
		b.MatchedTotal.Add(int64(matched))
	}
}

// RecordReevaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReevaluate(duration time.Duration, err error) {
	b.ReevaluateCount.Add(1)
	b.ReevaluateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReevaluateErrors.Add(1)
	}
}

// RecordPlanCache implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPlanCache(hit bool) {
	if hit {
		b.PlanCacheHits.Add(1)
	} else {
		b.PlanCacheMisses.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ExecuteCount:       b.ExecuteCount.Load(),
		ExecuteErrors:      b.ExecuteErrors.Load(),
		ExecuteAvgNanos:    b.getAvgExecuteNanos(),
		MatchedTotal:       b.MatchedTotal.Load(),
		ReevaluateCount:    b.ReevaluateCount.Load(),
		ReevaluateErrors:   b.ReevaluateErrors.Load(),
		ReevaluateAvgNanos: b.getAvgReevaluateNanos(),
		PlanCacheHits:      b.PlanCacheHits.Load(),
		PlanCacheMisses:    b.PlanCacheMisses.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgExecuteNanos() int64 {
	count := b.ExecuteCount.Load()
	if count == 0 {
		return 0
	}
	return b.ExecuteTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgReevaluateNanos() int64 {
	count := b.ReevaluateCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReevaluateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ExecuteCount       int64
	ExecuteErrors      int64
	ExecuteAvgNanos    int64
	MatchedTotal       int64
	ReevaluateCount    int64
	ReevaluateErrors   int64
	ReevaluateAvgNanos int64
	PlanCacheHits      int64
	PlanCacheMisses    int64
}
