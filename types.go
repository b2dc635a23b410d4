package statsdwriter

import (
	"fmt"
)

// SourceKind is an enumeration of the data-source kinds a collectd types
// database may declare.
type SourceKind byte

const (
	_ = iota
	// ABSOLUTE is a self-resetting counter.
	ABSOLUTE SourceKind = iota
	// COUNTER is a continuously incrementing counter.
	COUNTER
	// DERIVE is a rate derived from the difference of consecutive reads.
	DERIVE
	// GAUGE is a point-in-time value.
	GAUGE
)

func (k SourceKind) String() string {
	switch k {
	case ABSOLUTE:
		return "ABSOLUTE"
	case COUNTER:
		return "COUNTER"
	case DERIVE:
		return "DERIVE"
	case GAUGE:
		return "GAUGE"
	}
	return "unknown"
}

// ParseSourceKind converts the ds-type field of a types database entry into
// a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "ABSOLUTE":
		return ABSOLUTE, nil
	case "COUNTER":
		return COUNTER, nil
	case "DERIVE":
		return DERIVE, nil
	case "GAUGE":
		return GAUGE, nil
	}
	return 0, fmt.Errorf("invalid data-source type %q", s)
}

// DataSource describes one value slot within a metric-set's value vector.
// Min and Max are kept as the raw strings from the types database; "U"
// means unbounded.
type DataSource struct {
	Name string
	Kind SourceKind
	Min  string
	Max  string
}

// Types maps a metric-set name to its ordered data sources. The slice order
// positionally matches the value order in a Sample. Built once at startup
// and read-only afterwards, so it may be shared across writer goroutines
// without locking.
type Types map[string][]DataSource

// OptionalString is a sample identifier component that the host may leave
// unset. The zero value is absent. An empty string set explicitly is a
// valid, present value and is preserved as an empty path component.
type OptionalString struct {
	Value string
	Set   bool
}

// String returns a present OptionalString holding s.
func String(s string) OptionalString {
	return OptionalString{Value: s, Set: true}
}

// Sample is one measurement event delivered by the collection host. It is
// ephemeral; nothing retains it beyond a single write call.
type Sample struct {
	Plugin         string
	PluginInstance OptionalString
	Type           string // metric-set name
	TypeInstance   OptionalString
	Values         []float64
}

func (s *Sample) String() string {
	return fmt.Sprintf("{%s, %s, %v}", s.Plugin, s.Type, s.Values)
}
