// Package writer maps samples onto statsd paths and emits their values to
// a sink, with per-plugin overrides for plugins whose samples do not fit
// the default path layout.
package writer

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/lyft/statsdwriter"
)

// Writer turns one sample into zero or more sink emissions. Writers are
// stateless across calls; the types database and the sink are shared,
// immutable-after-init state, so a Writer may be invoked from concurrent
// host worker threads.
type Writer interface {
	Write(sample *statsdwriter.Sample, types statsdwriter.Types, sink statsdwriter.Sink) error
}

// Default emits every value of a sample as a gauge under the sample's
// hierarchical path.
type Default struct {
	logger  logrus.FieldLogger
	limiter *rate.Limiter
}

// NewDefault creates the default writer. limiter bounds the per-metric
// trace logging; nil logs every emission.
func NewDefault(logger logrus.FieldLogger, limiter *rate.Limiter) *Default {
	return &Default{
		logger:  logger,
		limiter: limiter,
	}
}

func (w *Default) Write(sample *statsdwriter.Sample, types statsdwriter.Types, sink statsdwriter.Sink) error {
	return w.writeStats(Path(sample), sample, types, sink)
}

// writeStats emits all of sample's values as gauges under base. Values of
// a multi-value sample are told apart by appending the data-source name
// the types database declares at the value's position; single-value
// samples never consult the types database.
func (w *Default) writeStats(base string, sample *statsdwriter.Sample, types statsdwriter.Types, sink statsdwriter.Sink) error {
	var sources []statsdwriter.DataSource
	if len(sample.Values) > 1 {
		var ok bool
		sources, ok = types[sample.Type]
		if !ok {
			return &statsdwriter.UnknownTypeError{Type: sample.Type}
		}
		if len(sources) < len(sample.Values) {
			return errors.Errorf("metric-set %q declares %d data sources, sample carries %d values", sample.Type, len(sources), len(sample.Values))
		}
	}
	for idx, value := range sample.Values {
		path := base
		if len(sample.Values) > 1 {
			path = base + "." + sources[idx].Name
		}
		trace(w.logger, w.limiter, sample.Plugin, path, value)
		if sink == nil {
			w.logger.Warn(statsdwriter.ErrNoSink)
			return statsdwriter.ErrNoSink
		}
		// Sink errors must reach the host unmodified; a slow or failing
		// statsd path throttles collectd's deliveries instead of losing
		// metrics silently.
		if err := sink.Gauge(path, value); err != nil {
			return err
		}
	}
	return nil
}

// trace logs one line per emitted metric. A nil limiter logs everything.
func trace(logger logrus.FieldLogger, limiter *rate.Limiter, plugin, path string, value float64) {
	if limiter != nil && !limiter.Allow() {
		return
	}
	logger.Infof("%s: %s = %v", plugin, path, value)
}
