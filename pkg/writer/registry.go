package writer

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Registry resolves a plugin name to its writer. Resolution is a single
// exact-match lookup; a plugin without an override gets the default
// writer. The table is built once at startup and read-only afterwards.
type Registry struct {
	def       Writer
	overrides map[string]Writer
}

// NewRegistry builds the writer table with the built-in overrides
// registered. limiter bounds per-metric trace logging across all writers;
// nil logs every emission.
func NewRegistry(logger logrus.FieldLogger, limiter *rate.Limiter) *Registry {
	def := NewDefault(logger, limiter)
	r := &Registry{
		def:       def,
		overrides: make(map[string]Writer),
	}
	r.Register("interface", NewInterface(def))
	r.Register("apache_worker_memory", NewApacheWorkerMemory(logger, limiter))
	return r
}

// Register installs an override for the given plugin name. Must only be
// called during startup, before samples start flowing.
func (r *Registry) Register(plugin string, w Writer) {
	r.overrides[plugin] = w
}

// Writer returns the writer registered for plugin, or the default writer
// if there is none.
func (r *Registry) Writer(plugin string) Writer {
	if w, ok := r.overrides[plugin]; ok {
		return w
	}
	return r.def
}
