package main

import (
	"github.com/sirupsen/logrus"

	"github.com/lyft/statsdwriter"
	"github.com/lyft/statsdwriter/pkg/plugin"
)

// A minimal stand-in for the collectd host: configure, initialize, write.
func main() {
	logger := logrus.New()
	p := plugin.New(logger, nil)

	err := p.Configure([]plugin.ConfigItem{
		{Key: "Host", Values: []string{"localhost"}},
		{Key: "Port", Values: []string{"8125"}},
		{Key: "Prefix", Values: []string{"collectd"}},
		{Key: "TypesDB", Values: []string{"/usr/share/collectd/types.db"}},
	})
	if err != nil {
		logger.Fatalf("configure failed: %v", err)
	}
	if err := p.Initialize(); err != nil {
		logger.Fatalf("initialize failed: %v", err)
	}
	defer p.Close()

	sample := &statsdwriter.Sample{
		Plugin: "load",
		Type:   "load",
		Values: []float64{0.12, 0.56, 0.91},
	}
	if err := p.Write(sample); err != nil {
		logger.Fatalf("write failed: %v", err)
	}
}
