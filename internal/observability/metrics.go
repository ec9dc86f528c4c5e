package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "sealevel"

// Metrics holds the Prometheus counters and histograms for one tool run.
// Batch runs are too short to scrape, so metrics live on a private registry
// that Push sends to a Pushgateway.
type Metrics struct {
	Registry *prometheus.Registry

	RowsRead          prometheus.Counter
	RowsSkipped       *prometheus.CounterVec // labels: reason={short_row,non_numeric,malformed}
	LinesWritten      *prometheus.CounterVec // labels: mode={overwrite,append}
	DuplicatesRemoved prometheus.Counter
	BlankLinesRemoved prometheus.Counter
	ParseErrors       prometheus.Counter
	RecordsPublished  prometheus.Counter
	RunDuration       *prometheus.HistogramVec // labels: operation
}

// NewMetrics creates all metrics and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_rows_read_total",
			Help:      "Source rows turned into measurements.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_rows_skipped_total",
			Help:      "Source rows dropped, by reason.",
		}, []string{"reason"}),
		LinesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "series_lines_written_total",
			Help:      "Canonical lines written, by write mode.",
		}, []string{"mode"}),
		DuplicatesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_removed_total",
			Help:      "Repeated lines dropped by deduplication.",
		}),
		BlankLinesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blank_lines_removed_total",
			Help:      "Blank lines dropped while cleaning a series.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "series_parse_errors_total",
			Help:      "Series lines that could not be parsed back into measurements.",
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Series records written to the Kafka sink topic.",
		}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a complete operation.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
	}

	m.Registry.MustRegister(
		m.RowsRead,
		m.RowsSkipped,
		m.LinesWritten,
		m.DuplicatesRemoved,
		m.BlankLinesRemoved,
		m.ParseErrors,
		m.RecordsPublished,
		m.RunDuration,
	)

	return m
}

// Push sends the registry to a Prometheus Pushgateway under the given job name.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
