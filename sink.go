package statsdwriter

// Sink is the downstream statsd backend accepting metric emissions.
// Implementations must be safe for concurrent use: the host delivers
// samples from parallel worker threads and all of them share one Sink.
//
// A Sink call may block on network I/O. Writers deliberately do not
// insulate against that; slow or failing sinks are how backpressure
// reaches the host's delivery mechanism.
type Sink interface {
	// Gauge emits a point-in-time value for the given dotted path.
	Gauge(path string, value float64) error
	// Timing emits a duration-style value for the given dotted path.
	Timing(path string, value float64) error
}
