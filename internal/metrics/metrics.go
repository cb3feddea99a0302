// Package metrics holds the Prometheus collectors for brief parsing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	BriefsParsed   *prometheus.CounterVec
	ParseDuration  prometheus.Histogram
	Confidence     prometheus.Histogram
	ErrorsCount    *prometheus.CounterVec
	JobsSubmitted  prometheus.Counter
	QueueDepth     prometheus.GaugeFunc
	TruncatedPages prometheus.Counter
}

// NewMetrics creates the collectors on a private registry. queueDepth may be
// nil when no pipeline is running.
func NewMetrics(namespace string, queueDepth func() int) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	if queueDepth == nil {
		queueDepth = func() int { return 0 }
	}
	return &Metrics{
		registry: reg,
		BriefsParsed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "briefs_parsed_total",
			Help:      "The total number of parsed briefs by outcome",
		}, []string{"outcome"}),
		ParseDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Time taken to extract and parse a brief",
			Buckets:   prometheus.DefBuckets,
		}),
		Confidence: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "brief_confidence_percent",
			Help:      "Coverage score of parsed briefs",
			Buckets:   prometheus.LinearBuckets(0, 100.0/7, 8),
		}),
		ErrorsCount: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
		JobsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_submitted_total",
			Help:      "The total number of queued ingestion jobs",
		}),
		QueueDepth: f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Jobs waiting for a worker",
		}, func() float64 { return float64(queueDepth()) }),
		TruncatedPages: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "truncated_documents_total",
			Help:      "Documents whose pages were capped before parsing",
		}),
	}
}

// ObserveParse records one successful parse.
func (m *Metrics) ObserveParse(outcome string, elapsed time.Duration, confidence int) {
	m.BriefsParsed.WithLabelValues(outcome).Inc()
	m.ParseDuration.Observe(elapsed.Seconds())
	m.Confidence.Observe(float64(confidence))
}

// Error counts a failure in the named operation.
func (m *Metrics) Error(operation string) {
	m.ErrorsCount.WithLabelValues(operation).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
