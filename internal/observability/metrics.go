// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Sync metrics
	MonthsFetched     prometheus.Counter
	RecordsSeen       prometheus.Counter
	RecordsAdmitted   prometheus.Counter
	RecordsDropped    prometheus.Counter
	RowsInserted      prometheus.Counter
	DuplicatesSkipped prometheus.Counter
	FetchErrors       *prometheus.CounterVec

	// Latency metrics
	FetchLatency  prometheus.Histogram
	UpsertLatency prometheus.Histogram

	// Health metrics
	LastSuccessfulSync prometheus.Gauge
	WatermarkPeriod    *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "apt_market_lab"
	}

	return &Metrics{
		MonthsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "months_fetched_total",
			Help:      "Total number of monthly fetch windows processed",
		}),
		RecordsSeen: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "records_seen_total",
			Help:      "Total number of raw records received from upstream",
		}),
		RecordsAdmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "records_admitted_total",
			Help:      "Total number of records admitted by normalization",
		}),
		RecordsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "records_dropped_total",
			Help:      "Total number of records dropped during normalization",
		}),
		RowsInserted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "rows_inserted_total",
			Help:      "Total number of transactions actually inserted",
		}),
		DuplicatesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "duplicates_skipped_total",
			Help:      "Total number of upsert rows skipped as dedup-key duplicates",
		}),
		FetchErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "fetch_errors_total",
			Help:      "Total number of classified fetch failures by kind",
		}, []string{"kind"}),

		FetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "fetch_latency_seconds",
			Help:      "Monthly fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		UpsertLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "upsert_latency_seconds",
			Help:      "Bulk upsert latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		LastSuccessfulSync: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "last_successful_sync_timestamp_seconds",
			Help:      "Unix timestamp of the last fully successful sync run",
		}),
		WatermarkPeriod: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "watermark_period",
			Help:      "Most recent YYYYMM period persisted per region",
		}, []string{"region"}),
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
