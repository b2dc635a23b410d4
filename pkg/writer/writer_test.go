package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyft/statsdwriter"
	"github.com/lyft/statsdwriter/internal/fixtures"
)

var testTypes = statsdwriter.Types{
	"if_octets": {
		{Name: "rx", Kind: statsdwriter.COUNTER, Min: "0", Max: "U"},
		{Name: "tx", Kind: statsdwriter.COUNTER, Min: "0", Max: "U"},
	},
	"load": {
		{Name: "shortterm", Kind: statsdwriter.GAUGE, Min: "0", Max: "5000"},
		{Name: "midterm", Kind: statsdwriter.GAUGE, Min: "0", Max: "5000"},
		{Name: "longterm", Kind: statsdwriter.GAUGE, Min: "0", Max: "5000"},
	},
}

func TestDefaultWriterSingleValue(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{}
	w := NewDefault(fixtures.NewTestLogger(t), nil)
	err := w.Write(&statsdwriter.Sample{
		Plugin: "load",
		Type:   "load",
		Values: []float64{1.5},
	}, testTypes, sink)
	require.NoError(t, err)
	// single-value samples never get a data-source suffix
	assert.Equal(t, []fixtures.Emission{
		{Kind: "gauge", Path: "load.load", Value: 1.5},
	}, sink.Emissions())
}

func TestDefaultWriterMultiValue(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{}
	w := NewDefault(fixtures.NewTestLogger(t), nil)
	err := w.Write(&statsdwriter.Sample{
		Plugin: "load",
		Type:   "load",
		Values: []float64{0.1, 0.2, 0.3},
	}, testTypes, sink)
	require.NoError(t, err)
	assert.Equal(t, []fixtures.Emission{
		{Kind: "gauge", Path: "load.load.shortterm", Value: 0.1},
		{Kind: "gauge", Path: "load.load.midterm", Value: 0.2},
		{Kind: "gauge", Path: "load.load.longterm", Value: 0.3},
	}, sink.Emissions())
}

func TestDefaultWriterUnknownType(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{}
	w := NewDefault(fixtures.NewTestLogger(t), nil)
	err := w.Write(&statsdwriter.Sample{
		Plugin: "df",
		Type:   "df_complex",
		Values: []float64{1, 2},
	}, testTypes, sink)
	require.Error(t, err)
	var unknownType *statsdwriter.UnknownTypeError
	require.ErrorAs(t, err, &unknownType)
	assert.Equal(t, "df_complex", unknownType.Type)
	assert.Empty(t, sink.Emissions())
}

func TestDefaultWriterUnknownTypeSingleValue(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{}
	w := NewDefault(fixtures.NewTestLogger(t), nil)
	// a single value needs no disambiguation, so no types lookup happens
	err := w.Write(&statsdwriter.Sample{
		Plugin: "df",
		Type:   "df_complex",
		Values: []float64{42},
	}, testTypes, sink)
	require.NoError(t, err)
	assert.Equal(t, []fixtures.Emission{
		{Kind: "gauge", Path: "df.df_complex", Value: 42},
	}, sink.Emissions())
}

func TestDefaultWriterTooManyValues(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{}
	w := NewDefault(fixtures.NewTestLogger(t), nil)
	err := w.Write(&statsdwriter.Sample{
		Plugin: "interface",
		Type:   "if_octets",
		Values: []float64{1, 2, 3},
	}, testTypes, sink)
	require.Error(t, err)
	assert.Empty(t, sink.Emissions())
}

func TestDefaultWriterNoSink(t *testing.T) {
	t.Parallel()
	w := NewDefault(fixtures.NewTestLogger(t), nil)
	err := w.Write(&statsdwriter.Sample{
		Plugin: "load",
		Type:   "load",
		Values: []float64{1.5},
	}, testTypes, nil)
	assert.Equal(t, statsdwriter.ErrNoSink, err)
}

func TestDefaultWriterSinkErrorPropagates(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{Err: assert.AnError}
	w := NewDefault(fixtures.NewTestLogger(t), nil)
	err := w.Write(&statsdwriter.Sample{
		Plugin: "load",
		Type:   "load",
		Values: []float64{0.1, 0.2, 0.3},
	}, testTypes, sink)
	// the first failing emission aborts the write, unmodified
	assert.Equal(t, assert.AnError, err)
	assert.Len(t, sink.Emissions(), 1)
}

func TestInterfaceWriter(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{}
	w := NewInterface(NewDefault(fixtures.NewTestLogger(t), nil))
	err := w.Write(&statsdwriter.Sample{
		Plugin:         "interface",
		PluginInstance: statsdwriter.String("eth0"),
		Type:           "if_octets",
		Values:         []float64{10, 20},
	}, testTypes, sink)
	require.NoError(t, err)
	assert.Equal(t, []fixtures.Emission{
		{Kind: "gauge", Path: "interface.eth0.octets.rx", Value: 10},
		{Kind: "gauge", Path: "interface.eth0.octets.tx", Value: 20},
	}, sink.Emissions())
}

func TestInterfaceWriterTypeInstance(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{}
	w := NewInterface(NewDefault(fixtures.NewTestLogger(t), nil))
	err := w.Write(&statsdwriter.Sample{
		Plugin:         "interface",
		PluginInstance: statsdwriter.String("eth0"),
		Type:           "if_errors",
		TypeInstance:   statsdwriter.String("upstream"),
		Values:         []float64{3},
	}, testTypes, sink)
	require.NoError(t, err)
	assert.Equal(t, []fixtures.Emission{
		{Kind: "gauge", Path: "interface.eth0.upstream.errors", Value: 3},
	}, sink.Emissions())
}

func TestApacheWorkerMemoryWriter(t *testing.T) {
	t.Parallel()
	sink := &fixtures.Sink{}
	w := NewApacheWorkerMemory(fixtures.NewTestLogger(t), nil)
	err := w.Write(&statsdwriter.Sample{
		Plugin:         "apache_worker_memory",
		PluginInstance: statsdwriter.String("httpd"),
		Type:           "memory",
		TypeInstance:   statsdwriter.String("ignored"),
		Values:         []float64{512000},
	}, nil, sink)
	require.NoError(t, err)
	// type components are dropped and the value goes out as a timing
	assert.Equal(t, []fixtures.Emission{
		{Kind: "timing", Path: "apache_worker_memory.httpd", Value: 512000},
	}, sink.Emissions())
}

func TestApacheWorkerMemoryWriterNoSink(t *testing.T) {
	t.Parallel()
	w := NewApacheWorkerMemory(fixtures.NewTestLogger(t), nil)
	err := w.Write(&statsdwriter.Sample{
		Plugin:         "apache_worker_memory",
		PluginInstance: statsdwriter.String("httpd"),
		Values:         []float64{512000},
	}, nil, nil)
	assert.Equal(t, statsdwriter.ErrNoSink, err)
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	r := NewRegistry(fixtures.NewTestLogger(t), nil)
	assert.IsType(t, &Interface{}, r.Writer("interface"))
	assert.IsType(t, &ApacheWorkerMemory{}, r.Writer("apache_worker_memory"))
	assert.IsType(t, &Default{}, r.Writer("cpu"))
	assert.IsType(t, &Default{}, r.Writer(""))
	// exact match only, no pattern matching
	assert.IsType(t, &Default{}, r.Writer("interface2"))
	assert.IsType(t, &Default{}, r.Writer("Interface"))
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()
	r := NewRegistry(fixtures.NewTestLogger(t), nil)
	custom := NewApacheWorkerMemory(fixtures.NewTestLogger(t), nil)
	r.Register("nginx_worker_memory", custom)
	assert.Equal(t, Writer(custom), r.Writer("nginx_worker_memory"))
}
