package graphkeep

import (
	"log/slog"

	"github.com/hupe1980/graphkeep/internal/container"
)

type options struct {
	segmentBits      uint
	initialCapacity  int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Store.
type Option func(*options)

// WithSegmentBits sets the log2 size of a storage segment. Keys inside one
// segment are contiguous in memory and form one chunk.
// Zero selects container.DefaultSegmentBits.
func WithSegmentBits(bits uint) Option {
	return func(o *options) {
		o.segmentBits = bits
	}
}

// WithInitialCapacity preallocates room for n items.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &graphkeep.BasicMetricsCollector{}
//	s := graphkeep.New(graphkeep.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Removes: %d, cascaded: %d\n", stats.RemoveCount, stats.RemovedItems)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
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
		segmentBits:      container.DefaultSegmentBits,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
