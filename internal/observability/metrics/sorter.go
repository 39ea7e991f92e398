package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/idimitrov/docsorter/internal/core/domain"
)

type SorterMetrics struct {
	registry *prometheus.Registry

	outcomeTotal  *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	cycleFiles    prometheus.Histogram
	filesInFlight prometheus.Gauge
}

func NewSorterMetrics(service string) *SorterMetrics {
	registry := prometheus.NewRegistry()

	outcomeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsorter",
			Subsystem: "sorter",
			Name:      "document_outcome_total",
			Help:      "Processed documents by outcome status and label.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"status", "label"},
	)
	cycleDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docsorter",
			Subsystem: "sorter",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of one poll cycle in seconds.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	cycleFiles := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docsorter",
			Subsystem: "sorter",
			Name:      "cycle_files",
			Help:      "Number of PDF files seen per poll cycle.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	filesInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docsorter",
			Subsystem: "sorter",
			Name:      "files_in_flight",
			Help:      "Number of files currently being processed.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(outcomeTotal, cycleDuration, cycleFiles, filesInFlight)

	return &SorterMetrics{
		registry:      registry,
		outcomeTotal:  outcomeTotal,
		cycleDuration: cycleDuration,
		cycleFiles:    cycleFiles,
		filesInFlight: filesInFlight,
	}
}

func (m *SorterMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *SorterMetrics) StartFile() {
	if m == nil {
		return
	}
	m.filesInFlight.Inc()
}

func (m *SorterMetrics) FinishFile(outcome domain.SortOutcome) {
	if m == nil {
		return
	}
	m.filesInFlight.Dec()
	m.outcomeTotal.WithLabelValues(string(outcome.Status), string(outcome.Label)).Inc()
}

func (m *SorterMetrics) ObserveCycle(duration time.Duration, files int) {
	if m == nil {
		return
	}
	m.cycleDuration.Observe(duration.Seconds())
	m.cycleFiles.Observe(float64(files))
}
