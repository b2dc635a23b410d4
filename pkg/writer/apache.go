package writer

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/lyft/statsdwriter"
)

// ApacheWorkerMemory handles the "apache_worker_memory" plugin. Per-worker
// memory is a distribution rather than a point-in-time reading, so values
// go out as timings, under plugin.plugin_instance with no type components.
type ApacheWorkerMemory struct {
	logger  logrus.FieldLogger
	limiter *rate.Limiter
}

// NewApacheWorkerMemory creates the apache_worker_memory writer.
func NewApacheWorkerMemory(logger logrus.FieldLogger, limiter *rate.Limiter) *ApacheWorkerMemory {
	return &ApacheWorkerMemory{
		logger:  logger,
		limiter: limiter,
	}
}

func (w *ApacheWorkerMemory) Write(sample *statsdwriter.Sample, types statsdwriter.Types, sink statsdwriter.Sink) error {
	path := sample.Plugin
	if sample.PluginInstance.Set {
		path += "." + sample.PluginInstance.Value
	}
	for _, value := range sample.Values {
		trace(w.logger, w.limiter, sample.Plugin, path, value)
		if sink == nil {
			w.logger.Warn(statsdwriter.ErrNoSink)
			return statsdwriter.ErrNoSink
		}
		// Same policy as the default writer: sink errors propagate so the
		// host throttles on a failing statsd path.
		if err := sink.Timing(path, value); err != nil {
			return err
		}
	}
	return nil
}
