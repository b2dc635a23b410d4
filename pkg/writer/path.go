package writer

import (
	"strings"

	"github.com/lyft/statsdwriter"
)

// Path returns the dotted hierarchical path for a sample. Components are
// joined in a fixed order: plugin name, plugin instance, metric-set name,
// type instance. Absent instance components are left out; present-but-empty
// ones are kept as empty path components.
func Path(s *statsdwriter.Sample) string {
	return joinPath(s, true)
}

// PathNoType is Path without the metric-set name, for writers that splice
// in a type component of their own.
func PathNoType(s *statsdwriter.Sample) string {
	return joinPath(s, false)
}

func joinPath(s *statsdwriter.Sample, withType bool) string {
	parts := make([]string, 0, 4)
	parts = append(parts, s.Plugin)
	if s.PluginInstance.Set {
		parts = append(parts, s.PluginInstance.Value)
	}
	if withType {
		parts = append(parts, s.Type)
	}
	if s.TypeInstance.Set {
		parts = append(parts, s.TypeInstance.Value)
	}
	return strings.Join(parts, ".")
}
