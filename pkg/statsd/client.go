// Package statsd implements the metric sink over the statsd plaintext
// protocol.
package statsd

import (
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/lyft/statsdwriter"
	"github.com/lyft/statsdwriter/pkg/util"
)

const (
	// SinkName is the name of this sink.
	SinkName = "statsd"
	// DefaultHost is the default statsd server host.
	DefaultHost = "localhost"
	// DefaultPort is the default statsd server port.
	DefaultPort = 8125
	// DefaultPrefix is the default path prefix (none).
	DefaultPrefix = ""
	// DefaultTransport is the default network transport.
	DefaultTransport = "udp"
	// DefaultDialTimeout is the default net.Dial timeout.
	DefaultDialTimeout = 5 * time.Second
	// DefaultWriteTimeout is the default socket write timeout.
	DefaultWriteTimeout = 30 * time.Second
)

const (
	// ParamHost is the name of parameter with the statsd server host.
	ParamHost = "host"
	// ParamPort is the name of parameter with the statsd server port.
	ParamPort = "port"
	// ParamPrefix is the name of parameter with the path prefix.
	ParamPrefix = "prefix"
	// ParamTransport is the name of parameter with the network transport.
	ParamTransport = "transport"
	// ParamDialTimeout is the name of parameter with the net.Dial timeout.
	ParamDialTimeout = "dial-timeout"
	// ParamWriteTimeout is the name of parameter with the socket write timeout.
	ParamWriteTimeout = "write-timeout"
)

// Client sends gauge and timing metrics to a statsd server. The connection
// is established once at construction and shared; calls are synchronous and
// safe for concurrent use. Send failures are returned to the caller rather
// than retried, so backpressure reaches the host delivering samples.
type Client struct {
	mu           sync.Mutex
	conn         net.Conn
	prefix       string
	writeTimeout time.Duration
	logger       logrus.FieldLogger
}

var _ statsdwriter.Sink = (*Client)(nil)

// NewClientFromViper constructs a Client using configuration provided by
// Viper.
func NewClientFromViper(v *viper.Viper, logger logrus.FieldLogger) (*Client, error) {
	util.InitViper(v, "")
	v.SetDefault(ParamHost, DefaultHost)
	v.SetDefault(ParamPort, DefaultPort)
	v.SetDefault(ParamPrefix, DefaultPrefix)
	v.SetDefault(ParamTransport, DefaultTransport)
	v.SetDefault(ParamDialTimeout, DefaultDialTimeout)
	v.SetDefault(ParamWriteTimeout, DefaultWriteTimeout)
	dialRetry, err := util.GetDialRetryFromViper(v)
	if err != nil {
		return nil, err
	}
	return NewClient(
		net.JoinHostPort(v.GetString(ParamHost), strconv.Itoa(v.GetInt(ParamPort))),
		v.GetString(ParamPrefix),
		v.GetString(ParamTransport),
		v.GetDuration(ParamDialTimeout),
		v.GetDuration(ParamWriteTimeout),
		dialRetry,
		logger,
	)
}

// NewClient connects to the statsd server at address. Stream transports
// retry the dial under the given backoff policy; datagram transports dial
// once, which only resolves and never round-trips.
func NewClient(address, prefix, transport string, dialTimeout, writeTimeout time.Duration, dialRetry util.BackoffFactory, logger logrus.FieldLogger) (*Client, error) {
	if address == "" {
		return nil, fmt.Errorf("[%s] address is required", SinkName)
	}
	if dialTimeout <= 0 {
		return nil, fmt.Errorf("[%s] dial-timeout should be positive", SinkName)
	}
	if writeTimeout < 0 {
		return nil, fmt.Errorf("[%s] write-timeout should be non-negative", SinkName)
	}
	switch transport {
	case "udp", "tcp":
	default:
		return nil, fmt.Errorf("[%s] transport must be one of 'udp' or 'tcp'", SinkName)
	}

	var conn net.Conn
	dial := func() error {
		var err error
		conn, err = net.DialTimeout(transport, address, dialTimeout)
		if err != nil {
			logger.Warnf("failed to connect to statsd at %s: %v", address, err)
		}
		return err
	}
	var err error
	if transport == "tcp" && dialRetry != nil {
		err = backoff.Retry(dial, dialRetry())
	} else {
		err = dial()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[%s] failed to connect to %s", SinkName, address)
	}

	logger.WithFields(logrus.Fields{
		"address":       address,
		"prefix":        prefix,
		"transport":     transport,
		"dial-timeout":  dialTimeout,
		"write-timeout": writeTimeout,
	}).Info("connected to statsd")

	return &Client{
		conn:         conn,
		prefix:       prefix,
		writeTimeout: writeTimeout,
		logger:       logger,
	}, nil
}

// Gauge emits a gauge metric.
func (c *Client) Gauge(path string, value float64) error {
	return c.send(path, value, "g")
}

// Timing emits a timing metric.
func (c *Client) Timing(path string, value float64) error {
	return c.send(path, value, "ms")
}

func (c *Client) send(path string, value float64, kind string) error {
	if c.prefix != "" {
		path = c.prefix + "." + path
	}
	line := fmt.Sprintf("%s:%f|%s\n", path, value, kind)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			c.logger.Warnf("failed to set write deadline: %v", err)
		}
	}
	if _, err := c.conn.Write([]byte(line)); err != nil {
		return errors.Wrapf(err, "[%s] error sending to statsd", SinkName)
	}
	return nil
}

// Close tears down the connection. The client must not be used afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
