package rawmem

// Memory provides scalar, bulk, mapping and allocation access to native
// memory outside the Go heap.
//
// A Memory carries no state of its own beyond configuration, so methods
// are safe for concurrent use as long as the address ranges they touch
// do not overlap. Coordinating overlapping access is the caller's job,
// exactly as it would be with raw pointers.
type Memory struct {
	logger     *Logger
	metrics    MetricsCollector
	accountant Accountant
}

// New creates a Memory configured by the given options.
func New(optFns ...Option) *Memory {
	o := applyOptions(optFns)

	return &Memory{
		logger:     o.logger,
		metrics:    o.metricsCollector,
		accountant: o.accountant,
	}
}
