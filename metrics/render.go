package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	LabelNameSource    = "source"
	LabelNameDirective = "directive"
)

const (
	SourceApi     = "api"
	SourcePreset  = "preset"
	SourcePublish = "publish"
)

type RenderMetrics struct {
	renders      *prometheus.CounterVec
	directives   *prometheus.CounterVec
	patternBytes prometheus.Histogram
}

var (
	renderMetrics *RenderMetrics
	renderOnce    sync.Once
)

func GetRenderMetrics() *RenderMetrics {
	renderOnce.Do(func() {
		renderMetrics = &RenderMetrics{
			renders: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemRender,
				Name:      "total",
				Help:      "Number of format patterns rendered, by the surface that asked for them.",
			}, []string{
				LabelNameSource,
			}),
			directives: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemRender,
				Name:      "directives_total",
				Help:      "Number of rendered patterns containing a directive, by directive.",
			}, []string{
				LabelNameDirective,
			}),
			patternBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemRender,
				Name:      "pattern_bytes",
				Help:      "Size of rendered patterns in bytes.",
				Buckets:   prometheus.ExponentialBuckets(8, 4, 6),
			}),
		}

		registry.MustRegister(renderMetrics.renders)
		registry.MustRegister(renderMetrics.directives)
		registry.MustRegister(renderMetrics.patternBytes)
	})

	return renderMetrics
}

// Rendered records one rendering of pattern. directives are the tokens the
// pattern contains.
func (r *RenderMetrics) Rendered(source string, pattern string, directives []string) {
	r.renders.WithLabelValues(source).Inc()
	r.patternBytes.Observe(float64(len(pattern)))
	for _, directive := range directives {
		r.directives.WithLabelValues(directive).Inc()
	}
}
