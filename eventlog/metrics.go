package eventlog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsSink counts events per operation and level.
type MetricsSink struct {
	events *prometheus.CounterVec
}

// NewMetricsSink creates a sink registering its counter with reg.
func NewMetricsSink(reg prometheus.Registerer) *MetricsSink {
	return &MetricsSink{
		events: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathkit_events_total",
				Help: "Total number of filesystem operation events",
			},
			[]string{"op", "level"},
		),
	}
}

// Append implements Sink.
func (m *MetricsSink) Append(e Event) {
	m.events.WithLabelValues(e.Op, string(e.Level)).Inc()
}
