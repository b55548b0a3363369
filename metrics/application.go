package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type ApplicationMetrics struct {
	PresetsTotal prometheus.Gauge
	// only updatable through NewSink and Drop
	sinksTotal prometheus.Gauge
}

var (
	applicationMetrics *ApplicationMetrics
	once               sync.Once
)

func GetApplicationMetrics() *ApplicationMetrics {
	once.Do(func() {
		applicationMetrics = &ApplicationMetrics{
			PresetsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemPresets,
				Name:      "total",
				Help:      "Total number of configured presets",
			}),
			sinksTotal: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemSinks,
				Name:      "total",
				Help:      "Total number of registered sinks",
			}),
		}

		registry.MustRegister(applicationMetrics.PresetsTotal)
		registry.MustRegister(applicationMetrics.sinksTotal)
	})

	return applicationMetrics
}
