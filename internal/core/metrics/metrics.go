// Package metrics provides Prometheus instrumentation for OTDS ingestion.
//
// All metrics are registered in a custom [prometheus.Registry] (not the global
// default). Batch runs export the registry to a node_exporter textfile; the
// watch command keeps it in memory for its whole lifetime.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors used by the ingest service.
type Metrics struct {
	Registry *prometheus.Registry

	IngestionsTotal  *prometheus.CounterVec
	IngestDuration   prometheus.Histogram
	IngestBytesTotal prometheus.Counter
	DuplicatesTotal  prometheus.Counter
	CatalogRecords   *prometheus.GaugeVec
	LastSuccess      prometheus.Gauge
}

// New creates and registers all otds metrics in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		IngestionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otds_ingestions_total",
			Help: "Total number of document ingestions by outcome.",
		}, []string{"result"}),

		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "otds_ingest_duration_seconds",
			Help:    "Time to read, gate and parse one document.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
		}),

		IngestBytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "otds_ingest_bytes_total",
			Help: "Total size of ingested documents in bytes.",
		}),

		DuplicatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "otds_ingest_duplicates_total",
			Help: "Documents whose checksum was already recorded in the ledger.",
		}),

		CatalogRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "otds_catalog_records",
			Help: "Number of records held in the catalog by collection.",
		}, []string{"collection"}),

		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "otds_last_success_timestamp_seconds",
			Help: "Unix time of the last successful ingestion.",
		}),
	}

	reg.MustRegister(
		m.IngestionsTotal,
		m.IngestDuration,
		m.IngestBytesTotal,
		m.DuplicatesTotal,
		m.CatalogRecords,
		m.LastSuccess,
	)

	return m
}

// RecordIngest records one ingestion attempt. Result is the error kind label
// ("ok" for success).
func (m *Metrics) RecordIngest(result string, d time.Duration, size int, at time.Time) {
	m.IngestionsTotal.WithLabelValues(result).Inc()
	m.IngestDuration.Observe(d.Seconds())
	m.IngestBytesTotal.Add(float64(size))
	if result == "ok" {
		m.LastSuccess.Set(float64(at.Unix()))
	}
}

// IncDuplicates counts a document already present in the ledger.
func (m *Metrics) IncDuplicates() {
	m.DuplicatesTotal.Inc()
}

// SetRecords updates the record gauge for one collection.
func (m *Metrics) SetRecords(collection string, n int) {
	m.CatalogRecords.WithLabelValues(collection).Set(float64(n))
}

// WriteTextfile exports the registry in the node_exporter textfile format.
// The file is written atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
