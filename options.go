package rawmem

import (
	"log/slog"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	accountant       Accountant
}

// Option configures Memory constructor behavior.
type Option func(*options)

// WithAccountant configures the external authority that admits native
// allocations. When no accountant is set, allocations are not accounted
// and Malloc only fails when the operating system runs out of memory.
//
// Example with resource.Controller:
//
//	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	mem := rawmem.New(rawmem.WithAccountant(ctrl))
func WithAccountant(a Accountant) Option {
	return func(o *options) {
		o.accountant = a
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &rawmem.BasicMetricsCollector{}
//	mem := rawmem.New(rawmem.WithMetricsCollector(metrics))
//	// ... use mem ...
//	stats := metrics.GetStats()
//	fmt.Printf("Allocations: %d, live bytes: %d\n", stats.AllocCount, stats.AllocatedBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := rawmem.NewJSONLogger(slog.LevelInfo)
//	mem := rawmem.New(rawmem.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
