package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"moodchart/internal/structures"
)

type MetricsProviderInterface interface {
	SetEntriesTotal(count int)
	ObserveSaveDuration(duration time.Duration)
	ObserveBackupDuration(duration time.Duration)
	IncBackupsCreated(manual bool)
	AddBackupsPruned(count int)
	IncStatsRecomputed()
	IncCacheHits()
	IncCacheMisses()
	// Flush writes the current metric values to the configured textfile, if any.
	Flush() error
}

type MetricsProvider struct {
	registry       *prometheus.Registry
	textfile       string
	entriesTotal   prometheus.Gauge
	saveDuration   prometheus.Histogram
	backupDuration prometheus.Histogram
	backupsCreated *prometheus.CounterVec
	backupsPruned  prometheus.Counter
	statsRecompute prometheus.Counter
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
}

func (m *MetricsProvider) SetEntriesTotal(count int) {
	m.entriesTotal.Set(float64(count))
}

func (m *MetricsProvider) ObserveSaveDuration(duration time.Duration) {
	m.saveDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveBackupDuration(duration time.Duration) {
	m.backupDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncBackupsCreated(manual bool) {
	kind := "automatic"
	if manual {
		kind = "manual"
	}
	m.backupsCreated.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) AddBackupsPruned(count int) {
	m.backupsPruned.Add(float64(count))
}

func (m *MetricsProvider) IncStatsRecomputed() {
	m.statsRecompute.Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) Flush() error {
	if m.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(m.textfile, m.registry)
}

// Gatherer exposes the private registry, mainly for tests.
func (m *MetricsProvider) Gatherer() prometheus.Gatherer {
	return m.registry
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsProvider{
		registry: reg,
		textfile: conf.Metrics.Textfile,

		entriesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moodchart_entries_total",
			Help: "Number of journal entries held in memory",
		}),

		saveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "moodchart_save_duration_seconds",
			Help:    "Duration of save operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		backupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "moodchart_backup_duration_seconds",
			Help:    "Duration of backup archive creation in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		backupsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moodchart_backups_created_total",
			Help: "Total number of backup archives created",
		}, []string{"kind"}),

		backupsPruned: factory.NewCounter(prometheus.CounterOpts{
			Name: "moodchart_backups_pruned_total",
			Help: "Total number of stale backup archives removed",
		}),

		statsRecompute: factory.NewCounter(prometheus.CounterOpts{
			Name: "moodchart_stats_recomputed_total",
			Help: "Total number of full statistics recomputations",
		}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "moodchart_cache_hits_total",
			Help: "Total number of stats cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "moodchart_cache_misses_total",
			Help: "Total number of stats cache misses",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) SetEntriesTotal(_ int)                 {}
func (n *noopMetrics) ObserveSaveDuration(_ time.Duration)   {}
func (n *noopMetrics) ObserveBackupDuration(_ time.Duration) {}
func (n *noopMetrics) IncBackupsCreated(_ bool)              {}
func (n *noopMetrics) AddBackupsPruned(_ int)                {}
func (n *noopMetrics) IncStatsRecomputed()                   {}
func (n *noopMetrics) IncCacheHits()                         {}
func (n *noopMetrics) IncCacheMisses()                       {}
func (n *noopMetrics) Flush() error                          { return nil }
