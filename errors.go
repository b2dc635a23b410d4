package statsdwriter

import (
	"errors"
	"fmt"
)

// ErrNoSink is returned by writers invoked before a sink has been
// constructed. It is intentionally fatal; swallowing it would silently
// drop metrics instead of surfacing the misconfiguration to the host.
var ErrNoSink = errors.New("statsd sink is not configured, not sending metrics")

// UnknownTypeError is returned when a multi-value sample names a
// metric-set that is absent from the types database, leaving no way to
// disambiguate its values positionally.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("metric-set %q not found in types database", e.Type)
}
