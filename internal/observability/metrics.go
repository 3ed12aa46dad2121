// Package observability exposes Prometheus metrics for the sensor panel.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	samplesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sensor_panel",
		Subsystem: "classifier",
		Name:      "samples_total",
		Help:      "Sensor samples seen by the classifier, labeled by sensor kind and outcome.",
	}, []string{"kind", "outcome"})

	togglesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sensor_panel",
		Subsystem: "display",
		Name:      "color_toggles_total",
		Help:      "Number of display color toggles caused by a detected shake.",
	})

	logEntriesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sensor_panel",
		Subsystem: "log",
		Name:      "entries_total",
		Help:      "Light log entries appended, labeled by intensity bucket.",
	}, []string{"bucket"})

	publishFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sensor_panel",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Session events that could not be written to Kafka.",
	})
)

func init() {
	prometheus.MustRegister(samplesCounter, togglesCounter, logEntriesCounter, publishFailures)
}

// Sample outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeIgnored  = "ignored"
)

// RecordSample counts a classified sample.
func RecordSample(kind, outcome string) {
	samplesCounter.WithLabelValues(kind, outcome).Inc()
}

// RecordToggle counts a display color toggle.
func RecordToggle() {
	togglesCounter.Inc()
}

// RecordLogEntry counts an appended light log entry. Banner lines use an empty bucket.
func RecordLogEntry(bucket string) {
	if bucket == "" {
		bucket = "none"
	}
	logEntriesCounter.WithLabelValues(bucket).Inc()
}

// RecordPublishFailure counts an event the publisher failed to deliver.
func RecordPublishFailure() {
	publishFailures.Inc()
}
