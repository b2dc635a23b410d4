package fixtures

import (
	"sync"

	"github.com/lyft/statsdwriter"
)

// Emission is one metric captured by a Sink.
type Emission struct {
	Kind  string // "gauge" or "timing"
	Path  string
	Value float64
}

// Sink captures emissions for assertions. Safe for concurrent use, like
// the real client.
type Sink struct {
	mu        sync.Mutex
	emissions []Emission

	// Err, when set, is returned by every call after capturing.
	Err error
}

var _ statsdwriter.Sink = (*Sink)(nil)

func (s *Sink) Gauge(path string, value float64) error {
	return s.record("gauge", path, value)
}

func (s *Sink) Timing(path string, value float64) error {
	return s.record("timing", path, value)
}

func (s *Sink) record(kind, path string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emissions = append(s.emissions, Emission{Kind: kind, Path: path, Value: value})
	return s.Err
}

// Emissions returns everything captured so far.
func (s *Sink) Emissions() []Emission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Emission, len(s.emissions))
	copy(out, s.emissions)
	return out
}
