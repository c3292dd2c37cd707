package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	TTSRequests       *prometheus.CounterVec
	SynthesisDuration prometheus.Histogram
	AudioFilesRemoved *prometheus.CounterVec
	AudioBytesServed  prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics registers instruments on reg. A nil reg uses a fresh private registry,
// which keeps tests that build many servers from colliding.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		TTSRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tts_requests_total",
			Help:      "Text-to-speech requests by outcome.",
		}, []string{"outcome"}),
		SynthesisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tts_synthesis_seconds",
			Help:      "Wall time of the external synthesis process.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		}),
		AudioFilesRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_files_removed_total",
			Help:      "Generated audio files removed, by cleanup trigger.",
		}, []string{"trigger"}),
		AudioBytesServed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_served_total",
			Help:      "Bytes of generated audio streamed to clients.",
		}),
		gatherer: reg,
	}
}

func (m *Metrics) ObserveSynthesis(d time.Duration) {
	m.SynthesisDuration.Observe(d.Seconds())
}

func (m *Metrics) FileRemoved(trigger string) {
	m.AudioFilesRemoved.WithLabelValues(trigger).Inc()
}

// Handler exposes the registry the metrics were created on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
