package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProcessingMetrics tracks batch and notification activity.
type ProcessingMetrics interface {
	IncCustomerCreated()
	IncProcessed(status string)
	IncProcessingFailed()
	IncNotificationSent(status string)
	IncNotificationFailed()
	ObserveBatchDuration(seconds float64)
}

type processingMetrics struct {
	customersCreated    prometheus.Counter
	customersProcessed  *prometheus.CounterVec
	processingFailures  prometheus.Counter
	notificationsSent   *prometheus.CounterVec
	notificationsFailed prometheus.Counter
	batchDuration       prometheus.Histogram
}

// NewProcessingMetrics registers the processing metrics on the registry.
func NewProcessingMetrics(registry *prometheus.Registry) ProcessingMetrics {
	return &processingMetrics{
		customersCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "customers_created_total",
			Help: "The total number of customers created through the API",
		}),
		customersProcessed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "customers_processed_total",
			Help: "The total number of customers processed by lifecycle status",
		}, []string{"status"}),
		processingFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "customer_processing_failures_total",
			Help: "The total number of customers whose processing failed",
		}),
		notificationsSent: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "debit_notes_sent_total",
			Help: "The total number of debit-note emails sent by status",
		}, []string{"status"}),
		notificationsFailed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "debit_note_failures_total",
			Help: "The total number of debit-note generation or delivery failures",
		}),
		batchDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "processing_batch_duration_seconds",
			Help:    "Wall-clock duration of full batch runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}
}

func (m *processingMetrics) IncCustomerCreated() {
	m.customersCreated.Inc()
}

func (m *processingMetrics) IncProcessed(status string) {
	m.customersProcessed.WithLabelValues(status).Inc()
}

func (m *processingMetrics) IncProcessingFailed() {
	m.processingFailures.Inc()
}

func (m *processingMetrics) IncNotificationSent(status string) {
	m.notificationsSent.WithLabelValues(status).Inc()
}

func (m *processingMetrics) IncNotificationFailed() {
	m.notificationsFailed.Inc()
}

func (m *processingMetrics) ObserveBatchDuration(seconds float64) {
	m.batchDuration.Observe(seconds)
}
