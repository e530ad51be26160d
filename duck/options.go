package duck

// Option defines a functional option for configuring a Duck.
type Option func(*Duck) error

// WithLogger sets the logger for the Duck and the reducer it builds.
//
// Debug level: per-action dispatch outcomes, unknown-action fall-throughs (development use)
// Warn level: registrations attempted on a sealed duck.
func WithLogger(logger Logger) Option {
	return func(d *Duck) error {
		d.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Duck and the reducer it builds.
// The collector will receive dispatch counts per action type and reduce durations.
func WithMetrics(collector MetricsCollector) Option {
	return func(d *Duck) error {
		d.metricsCollector = collector
		return nil
	}
}
