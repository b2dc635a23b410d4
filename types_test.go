package statsdwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceKind(t *testing.T) {
	t.Parallel()
	input := map[string]SourceKind{
		"ABSOLUTE": ABSOLUTE,
		"COUNTER":  COUNTER,
		"DERIVE":   DERIVE,
		"GAUGE":    GAUGE,
	}
	for s, expected := range input {
		s := s
		expected := expected
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			k, err := ParseSourceKind(s)
			require.NoError(t, err)
			assert.Equal(t, expected, k)
			assert.Equal(t, s, k.String())
		})
	}
}

func TestParseSourceKindRejectsUnknown(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "gauge", "Gauge", "TIMER", "COUNT"} {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			_, err := ParseSourceKind(s)
			assert.Error(t, err)
		})
	}
}

func TestOptionalStringZeroValueIsAbsent(t *testing.T) {
	t.Parallel()
	var o OptionalString
	assert.False(t, o.Set)
	assert.True(t, String("").Set)
	assert.Equal(t, "eth0", String("eth0").Value)
}
