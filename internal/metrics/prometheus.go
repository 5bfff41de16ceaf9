// Package metrics records application submission metrics with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder observes finished submission attempts
type Recorder interface {
	ObserveSubmission(path, outcome, stage string, duration time.Duration)
	ObserveCatalogLoad(provider string, success bool, jobs int)
}

// NopRecorder drops every observation
type NopRecorder struct{}

func (NopRecorder) ObserveSubmission(path, outcome, stage string, duration time.Duration) {}
func (NopRecorder) ObserveCatalogLoad(provider string, success bool, jobs int) {}

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	submissionsTotal   *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
	catalogLoadsTotal  *prometheus.CounterVec
	catalogJobs        prometheus.Gauge
}

// NewPrometheusRecorder registers the submission metrics on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		submissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobboard_submissions_total",
				Help: "Application submissions by path, outcome and failing stage",
			},
			[]string{"path", "outcome", "stage"},
		),
		submissionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jobboard_submission_duration_seconds",
				Help:    "End-to-end duration of application submissions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "outcome"},
		),
		catalogLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobboard_catalog_loads_total",
				Help: "Job listing loads by provider and status",
			},
			[]string{"provider", "status"},
		),
		catalogJobs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "jobboard_catalog_jobs",
				Help: "Number of jobs in the last loaded listing",
			},
		),
	}
}

// ObserveSubmission records one finished attempt
func (p *PrometheusRecorder) ObserveSubmission(path, outcome, stage string, duration time.Duration) {
	p.submissionsTotal.WithLabelValues(path, outcome, stage).Inc()
	p.submissionDuration.WithLabelValues(path, outcome).Observe(duration.Seconds())
}

// ObserveCatalogLoad records one listing fetch
func (p *PrometheusRecorder) ObserveCatalogLoad(provider string, success bool, jobs int) {
	status := "success"
	if !success {
		status = "error"
	}
	p.catalogLoadsTotal.WithLabelValues(provider, status).Inc()
	if success {
		p.catalogJobs.Set(float64(jobs))
	}
}
