package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/xmlbin/errors"
)

func TestObserve(t *testing.T) {
	m := New()
	start := time.Now()

	m.Observe(OpEncode, start, nil)
	m.Observe(OpEncode, start, nil)
	m.Observe(OpEncode, start, errors.InvalidEnumValue([]string{"R", "A"}, "X"))
	m.Observe(OpDecode, start, os.ErrNotExist)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues(OpEncode, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpEncode, "invalid_enum_value")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpDecode, "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestBytesAndLayout(t *testing.T) {
	m := New()
	m.AddBytes(OpEncode, 34)
	m.AddBytes(OpEncode, 34)
	m.AddBytes(OpDecode, 0)
	m.SetLayout(5, 34)

	assert.Equal(t, 68.0, testutil.ToFloat64(m.bytes.WithLabelValues(OpEncode)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.fields))
	assert.Equal(t, 34.0, testutil.ToFloat64(m.recordSize))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe(OpCompile, time.Now(), nil)
		m.AddBytes(OpEncode, 10)
		m.SetLayout(1, 4)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(OpHeader, time.Now(), nil)

	path := filepath.Join(t.TempDir(), "xmlbin.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `xmlbin_operations_total{op="header",result="ok"} 1`), string(data))
}
