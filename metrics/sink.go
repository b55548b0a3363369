package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	LabelNameSink   = "sink"
	LabelNamePreset = "preset"
)

type SinkMetric struct {
	status          prometheus.Gauge
	lastSuccessAt   prometheus.Gauge
	objectsWritten  *prometheus.CounterVec
	lastPublishedAt *prometheus.GaugeVec
}

func NewSink(sinkName string) *SinkMetric {
	GetApplicationMetrics().sinksTotal.Inc()

	sinkLabels := map[string]string{LabelNameSink: sinkName}
	sink := &SinkMetric{
		status: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystemPublish,
			Name:        "status",
			Help:        "Indicates whether the last publish run to this sink had problems. Any value >0 means that errors occurred.",
			ConstLabels: sinkLabels,
		}),
		lastSuccessAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystemPublish,
			Name:        "last_success_seconds",
			Help:        "Unix Time of the last publish run to this sink without errors.",
			ConstLabels: sinkLabels,
		}),
		objectsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystemPublish,
			Name:        "objects_written_total",
			Help:        "Number of rendered objects written to this sink.",
			ConstLabels: sinkLabels,
		}, []string{
			LabelNamePreset,
		}),
		lastPublishedAt: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystemPublish,
			Name:        "rendered_instant_seconds",
			Help:        "Unix Time of the instant the latest object of a preset was rendered for.",
			ConstLabels: sinkLabels,
		}, []string{
			LabelNamePreset,
		}),
	}

	registry.MustRegister(sink.status)
	registry.MustRegister(sink.lastSuccessAt)
	registry.MustRegister(sink.objectsWritten)
	registry.MustRegister(sink.lastPublishedAt)

	return sink
}

func (s *SinkMetric) Drop() {
	GetApplicationMetrics().sinksTotal.Dec()

	registry.Unregister(s.status)
	registry.Unregister(s.lastSuccessAt)
	registry.Unregister(s.objectsWritten)
	registry.Unregister(s.lastPublishedAt)
}

func (s *SinkMetric) Written(preset string, at time.Time) {
	s.objectsWritten.WithLabelValues(preset).Inc()
	s.lastPublishedAt.WithLabelValues(preset).Set(float64(at.Unix()))
}

// Finished closes a publish run; failures is the number of objects that
// could not be written.
func (s *SinkMetric) Finished(failures int, now time.Time) {
	s.status.Set(float64(failures))
	if failures == 0 {
		s.lastSuccessAt.Set(float64(now.Unix()))
	}
}
