package writer

import (
	"github.com/lyft/statsdwriter"
)

const ifPrefix = "if_"

// Interface handles the "interface" plugin. Its metric-set names carry an
// if_ prefix (if_octets, if_errors); the path gets the name with that
// prefix stripped, spliced in where the metric-set name would normally go.
type Interface struct {
	def *Default
}

// NewInterface creates the interface-plugin writer, delegating the actual
// emission to def.
func NewInterface(def *Default) *Interface {
	return &Interface{def: def}
}

func (w *Interface) Write(sample *statsdwriter.Sample, types statsdwriter.Types, sink statsdwriter.Sink) error {
	name := sample.Type
	if len(name) >= len(ifPrefix) {
		name = name[len(ifPrefix):]
	}
	return w.def.writeStats(PathNoType(sample)+"."+name, sample, types, sink)
}
