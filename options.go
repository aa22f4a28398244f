package docgo

import (
	"log/slog"
)

const defaultPlanCacheSize = 128

type options struct {
	scanWorkers        int
	maxConcurrentScans int64
	reevalPerSecond    float64
	reevalBurst        int
	planCacheSize      int
	metricsCollector   MetricsCollector
	logger             *Logger
}

// Option configures Engine constructor behavior.
//
// Options exist to avoid exploding the API surface with constructor variants;
// an Engine built with no options is fully usable.
type Option func(*options)

// WithScanWorkers configures the number of goroutines that partition a
// snapshot during Execute.
//
// If workers <= 0, GOMAXPROCS is used. The worker count is additionally
// capped at the snapshot length, so small snapshots never pay fan-out
// overhead.
func WithScanWorkers(workers int) Option {
	return func(o *options) {
		o.scanWorkers = workers
	}
}

// WithMaxConcurrentScans caps the number of Execute calls scanning
// snapshots at the same time. Further calls block on a scan slot until one
// frees up or their context is canceled.
//
// If n <= 0, GOMAXPROCS is used.
func WithMaxConcurrentScans(n int64) Option {
	return func(o *options) {
		o.maxConcurrentScans = n
	}
}

// WithReevaluationRate throttles Reevaluate to perSecond sustained calls
// with the given burst. Listener loops that re-evaluate membership on every
// local write use this to keep write storms from starving scans.
//
// If perSecond <= 0, re-evaluation is unlimited (the default).
func WithReevaluationRate(perSecond float64, burst int) Option {
	return func(o *options) {
		o.reevalPerSecond = perSecond
		o.reevalBurst = burst
	}
}

// WithPlanCacheSize configures the number of query plans kept in the
// engine's LRU cache. Plans are keyed by the query's canonical ID, so
// listener loops that rebuild equal query values reuse the cached ordering
// and comparator instead of rebuilding them per write.
//
// If size <= 0, the default of 128 is used.
func WithPlanCacheSize(size int) Option {
	return func(o *options) {
		o.planCacheSize = size
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &docgo.BasicMetricsCollector{}
//	engine := docgo.New(docgo.WithMetricsCollector(metrics))
//	// ... use engine ...
//	stats := metrics.GetStats()
//	fmt.Printf("Executes: %d, Avg latency: %dns\n", stats.ExecuteCount, stats.ExecuteAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := docgo.NewJSONLogger(slog.LevelInfo)
//	engine := docgo.New(docgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		planCacheSize:    defaultPlanCacheSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.planCacheSize <= 0 {
		o.planCacheSize = defaultPlanCacheSize
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
