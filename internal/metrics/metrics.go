// Package metrics defines the Prometheus collectors for soil analysis.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "soilscan"

// Analysis outcomes.
const (
	OutcomeRecorded   = "recorded"
	OutcomeUnrecorded = "unrecorded"
	OutcomeFailed     = "failed"
)

// Metrics holds the analysis pipeline collectors.
type Metrics struct {
	fallbacks          *prometheus.CounterVec
	analyses           *prometheus.CounterVec
	reports            *prometheus.CounterVec
	scansRecorded      prometheus.Counter
	scanFailures       prometheus.Counter
	imageUploads       *prometheus.CounterVec
	classifierDuration *prometheus.HistogramVec
}

// New creates Metrics and registers it with registry.
func New(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{}
	m.init()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("register soilscan metrics: %w", err)
	}
	return m, nil
}

func (m *Metrics) init() {
	m.fallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_fallbacks_total",
		Help:      "Classifier labels that resolved to the fallback soil profile.",
	}, []string{"label"})

	m.analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Analysis requests by outcome.",
	}, []string{"outcome"})

	m.reports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_synthesized_total",
		Help:      "Synthesized reports by classifier label.",
	}, []string{"soil_type"})

	m.scansRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_recorded_total",
		Help:      "Scans written to history.",
	})

	m.scanFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_record_failures_total",
		Help:      "Scan history writes that failed.",
	})

	m.imageUploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Scan image uploads by status.",
	}, []string{"status"})

	m.classifierDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classifier_duration_seconds",
		Help:      "Classifier call latency.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"status"})
}

// ObserveFallback counts a label that missed the catalog.
func (m *Metrics) ObserveFallback(label string) {
	m.fallbacks.WithLabelValues(label).Inc()
}

// ObserveReport counts a synthesized report.
func (m *Metrics) ObserveReport(label string) {
	m.reports.WithLabelValues(label).Inc()
}

// ObserveAnalysis counts a finished analysis request.
func (m *Metrics) ObserveAnalysis(outcome string) {
	m.analyses.WithLabelValues(outcome).Inc()
}

// ObserveRecord counts a history write.
func (m *Metrics) ObserveRecord(err error) {
	if err != nil {
		m.scanFailures.Inc()
		return
	}
	m.scansRecorded.Inc()
}

// ObserveUpload counts an image upload.
func (m *Metrics) ObserveUpload(err error) {
	m.imageUploads.WithLabelValues(status(err)).Inc()
}

// ObserveClassification records classifier latency.
func (m *Metrics) ObserveClassification(d time.Duration, err error) {
	m.classifierDuration.WithLabelValues(status(err)).Observe(d.Seconds())
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.fallbacks.Describe(ch)
	m.analyses.Describe(ch)
	m.reports.Describe(ch)
	ch <- m.scansRecorded.Desc()
	ch <- m.scanFailures.Desc()
	m.imageUploads.Describe(ch)
	m.classifierDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.fallbacks.Collect(ch)
	m.analyses.Collect(ch)
	m.reports.Collect(ch)
	ch <- m.scansRecorded
	ch <- m.scanFailures
	m.imageUploads.Collect(ch)
	m.classifierDuration.Collect(ch)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
