package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	m, err := New(registry)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, registry
}

func TestNewRejectsDoubleRegistration(t *testing.T) {
	_, registry := newTestMetrics(t)
	if _, err := New(registry); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestCounters(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveFallback("Gravel")
	m.ObserveFallback("Gravel")
	m.ObserveReport("Black Soil")
	m.ObserveAnalysis(OutcomeRecorded)
	m.ObserveAnalysis(OutcomeUnrecorded)
	m.ObserveRecord(nil)
	m.ObserveRecord(errors.New("db down"))
	m.ObserveUpload(nil)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"fallbacks", m.fallbacks.WithLabelValues("Gravel"), 2},
		{"reports", m.reports.WithLabelValues("Black Soil"), 1},
		{"recorded analyses", m.analyses.WithLabelValues(OutcomeRecorded), 1},
		{"unrecorded analyses", m.analyses.WithLabelValues(OutcomeUnrecorded), 1},
		{"scans recorded", m.scansRecorded, 1},
		{"scan failures", m.scanFailures, 1},
		{"uploads", m.imageUploads.WithLabelValues("success"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifierHistogram(t *testing.T) {
	m, registry := newTestMetrics(t)

	m.ObserveClassification(120*time.Millisecond, nil)
	m.ObserveClassification(3*time.Second, errors.New("timeout"))

	if n := testutil.CollectAndCount(m.classifierDuration); n != 2 {
		t.Errorf("series = %d, want 2", n)
	}

	expected := `
# HELP soilscan_scans_recorded_total Scans written to history.
# TYPE soilscan_scans_recorded_total counter
soilscan_scans_recorded_total 0
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "soilscan_scans_recorded_total"); err != nil {
		t.Error(err)
	}
}
