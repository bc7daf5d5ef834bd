package metrics

import (
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/xmlbin/errors"
)

// Operation labels.
const (
	OpCompile = "compile"
	OpEncode  = "encode"
	OpDecode  = "decode"
	OpHeader  = "header"
)

// Metrics records converter activity on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bytes      *prometheus.CounterVec
	fields     prometheus.Gauge
	recordSize prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xmlbin",
			Name:      "operations_total",
			Help:      "Converter operations by operation and result (ok or error kind).",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "xmlbin",
			Name:      "operation_duration_seconds",
			Help:      "Duration of converter operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xmlbin",
			Name:      "record_bytes_total",
			Help:      "Binary record bytes produced (encode) or consumed (decode).",
		}, []string{"op"}),
		fields: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "xmlbin",
			Subsystem: "layout",
			Name:      "fields",
			Help:      "Number of fields in the compiled layout, padding included.",
		}),
		recordSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "xmlbin",
			Subsystem: "layout",
			Name:      "record_bytes",
			Help:      "Encoded size of one record of the compiled layout.",
		}),
	}
	m.registry.MustRegister(m.operations, m.duration, m.bytes, m.fields, m.recordSize)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Observe records one finished operation started at start.
func (m *Metrics) Observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result(err)).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// AddBytes counts record bytes handled by op.
func (m *Metrics) AddBytes(op string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bytes.WithLabelValues(op).Add(float64(n))
}

// SetLayout publishes the shape of the compiled layout.
func (m *Metrics) SetLayout(fields, size int) {
	if m == nil {
		return
	}
	m.fields.Set(float64(fields))
	m.recordSize.Set(float64(size))
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		return string(e.Kind)
	}
	return "error"
}
