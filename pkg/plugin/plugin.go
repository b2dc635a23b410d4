// Package plugin implements the callback surface the collectd host drives:
// configure validates the host-supplied options and loads the types
// database, initialize constructs the statsd sink, and write maps one
// sample into metric emissions.
package plugin

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/lyft/statsdwriter"
	"github.com/lyft/statsdwriter/pkg/statsd"
	"github.com/lyft/statsdwriter/pkg/typesdb"
	"github.com/lyft/statsdwriter/pkg/util"
	"github.com/lyft/statsdwriter/pkg/writer"
)

const (
	// ParamTypesDB is the name of parameter with the types database path.
	ParamTypesDB = "typesdb"
	// DefaultTypesDB is the default types database path.
	DefaultTypesDB = "/usr/share/collectd/types.db"
)

// ConfigItem is one key/value configuration entry as delivered by the
// host. The host's config format allows repeated values per key; anything
// other than exactly one value is rejected with a warning.
type ConfigItem struct {
	Key    string
	Values []string
}

// Plugin holds the state shared by every write call: the parsed types
// database, the sink and the writer table. All of it is built during
// Configure/Initialize and read-only afterwards, so Write may be invoked
// from the host's parallel worker threads without locking.
type Plugin struct {
	logger   logrus.FieldLogger
	registry *writer.Registry

	conf  *viper.Viper
	types statsdwriter.Types
	sink  statsdwriter.Sink
}

// New creates an unconfigured plugin. limiter bounds per-metric trace
// logging; nil logs every emission.
func New(logger logrus.FieldLogger, limiter *rate.Limiter) *Plugin {
	return &Plugin{
		logger:   logger,
		registry: writer.NewRegistry(logger, limiter),
	}
}

// Configure validates the host-supplied configuration and loads the types
// database. Unknown keys and keys without exactly one value are warned
// about and ignored; the defaults stand. A missing or malformed types
// database is fatal.
func (p *Plugin) Configure(items []ConfigItem) error {
	known := map[string]bool{
		statsd.ParamHost:   true,
		statsd.ParamPort:   true,
		statsd.ParamPrefix: true,
		ParamTypesDB:       true,
	}

	v := viper.New()
	util.InitViper(v, "")
	v.SetDefault(statsd.ParamHost, statsd.DefaultHost)
	v.SetDefault(statsd.ParamPort, statsd.DefaultPort)
	v.SetDefault(statsd.ParamPrefix, statsd.DefaultPrefix)
	v.SetDefault(ParamTypesDB, DefaultTypesDB)

	for _, item := range items {
		key := strings.ToLower(item.Key)
		if !known[key] {
			p.logger.Warnf("Unexpected configuration key: %s!", item.Key)
			continue
		}
		switch len(item.Values) {
		case 1:
			v.Set(key, item.Values[0])
		case 0:
			p.logger.Warnf("Must provide a value for configuration key: %s!", item.Key)
		default:
			p.logger.Warnf("Too many values for configuration key: %s! Expected 1, got %d", item.Key, len(item.Values))
		}
	}

	types, err := typesdb.ParseFile(v.GetString(ParamTypesDB))
	if err != nil {
		return err
	}

	p.conf = v
	p.types = types
	return nil
}

// Initialize constructs the statsd client that write calls will share.
// The client is safe for concurrent use by the host's worker threads.
func (p *Plugin) Initialize() error {
	if p.conf == nil {
		return errors.New("plugin is not configured")
	}
	client, err := statsd.NewClientFromViper(p.conf, p.logger)
	if err != nil {
		return err
	}
	p.sink = client
	return nil
}

// Write emits one sample's metrics through the writer registered for its
// plugin. Errors are returned to the host as-is; the host slows its
// deliveries on a failing statsd path, so nothing is recovered here.
func (p *Plugin) Write(sample *statsdwriter.Sample) error {
	return p.registry.Writer(sample.Plugin).Write(sample, p.types, p.sink)
}

// Close releases the sink connection, if one was constructed.
func (p *Plugin) Close() error {
	if c, ok := p.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
