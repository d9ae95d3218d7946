// Package metrics provides Prometheus metrics for the owarai scoring engine.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric of the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Ranking
	rankingsComputed  prometheus.Counter
	rankingDuration   prometheus.Histogram
	rankingCache      *prometheus.CounterVec
	performersRanked  prometheus.Gauge
	oddsQuotes        *prometheus.CounterVec
	predictionsJudged *prometheus.CounterVec
	payloadsMalformed prometheus.Counter
	settlements       *prometheus.CounterVec
	payoutPointsTotal prometheus.Counter

	// Settlement queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Settlement workers
	workerCount       prometheus.Gauge
	workerLatency     prometheus.Histogram
	workerErrors      prometheus.Counter
	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry backing globalManager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "owarai",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rankingsComputed = auto.NewCounter(m.counterOpts("rankings_computed_total", "Number of rankings aggregated from a snapshot"))
	m.rankingDuration = auto.NewHistogram(m.histogramOpts("ranking_compute_duration_seconds", "Time spent aggregating one ranking"))
	m.rankingCache = auto.NewCounterVec(m.counterOpts("ranking_cache_lookups_total", "Ranking cache lookups by result"), []string{"result"})
	m.performersRanked = auto.NewGauge(m.gaugeOpts("performers_ranked", "Performers in the most recent ranking"))
	m.oddsQuotes = auto.NewCounterVec(m.counterOpts("odds_quotes_total", "Odds quoted by prediction type"), []string{"prediction_type"})
	m.predictionsJudged = auto.NewCounterVec(m.counterOpts("predictions_evaluated_total", "Prediction entries evaluated by type and outcome"), []string{"prediction_type", "won"})
	m.payloadsMalformed = auto.NewCounter(m.counterOpts("payload_malformed_total", "Stored prediction payloads rejected by the decoder"))
	m.settlements = auto.NewCounterVec(m.counterOpts("settlements_total", "Stored predictions handled by the settlement run, by status"), []string{"status"})
	m.payoutPointsTotal = auto.NewCounter(m.counterOpts("payout_points_total", "Points paid out to winning predictions"))

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Settlement jobs waiting in the queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum number of queued settlement jobs"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueued_total", "Settlement jobs accepted by the queue"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeued_total", "Settlement jobs handed to workers"))
	m.queueEnqueueErrors = auto.NewCounterVec(m.counterOpts("queue_enqueue_errors_total", "Settlement jobs rejected by the queue, by reason"), []string{"reason"})

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Settlement workers in the pool"))
	m.workerLatency = auto.NewHistogram(m.histogramOpts("worker_processing_duration_seconds", "Time spent settling one job"))
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Settlement jobs that failed"))
	m.errorsByComponent = auto.NewCounterVec(m.counterOpts("errors_total", "Errors by component and type"), []string{"component", "type"})
}

// RecordRankingComputed records one aggregation.
func (m *Manager) RecordRankingComputed(d time.Duration, performers int) {
	m.rankingsComputed.Inc()
	m.rankingDuration.Observe(d.Seconds())
	m.performersRanked.Set(float64(performers))
}

// RecordRankingCache records a cache lookup.
func (m *Manager) RecordRankingCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.rankingCache.WithLabelValues(result).Inc()
}

// RecordOddsQuote counts one quote.
func (m *Manager) RecordOddsQuote(predictionType string) {
	m.oddsQuotes.WithLabelValues(predictionType).Inc()
}

// RecordPredictionEvaluated counts one evaluated entry.
func (m *Manager) RecordPredictionEvaluated(predictionType string, won bool) {
	m.predictionsJudged.WithLabelValues(predictionType, strconv.FormatBool(won)).Inc()
}

// RecordPayloadMalformed counts a rejected payload.
func (m *Manager) RecordPayloadMalformed() { m.payloadsMalformed.Inc() }

// RecordSettlement counts a settlement outcome.
func (m *Manager) RecordSettlement(status string) {
	m.settlements.WithLabelValues(status).Inc()
}

// RecordPayout adds paid points. Negative values are ignored.
func (m *Manager) RecordPayout(points float64) {
	if points > 0 {
		m.payoutPointsTotal.Add(points)
	}
}

// UpdateQueueSize sets the queue backlog.
func (m *Manager) UpdateQueueSize(size int) { m.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the queue capacity.
func (m *Manager) UpdateQueueCapacity(capacity int) { m.queueCapacity.Set(float64(capacity)) }

// RecordQueueEnqueue counts an accepted job.
func (m *Manager) RecordQueueEnqueue() { m.queueEnqueued.Inc() }

// RecordQueueDequeue counts a delivered job.
func (m *Manager) RecordQueueDequeue() { m.queueDequeued.Inc() }

// RecordQueueEnqueueError counts a rejected job.
func (m *Manager) RecordQueueEnqueueError(reason string) {
	m.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the pool size.
func (m *Manager) UpdateWorkerCount(count int) { m.workerCount.Set(float64(count)) }

// RecordWorkerProcessingLatency observes the time spent on one job.
func (m *Manager) RecordWorkerProcessingLatency(d time.Duration) {
	m.workerLatency.Observe(d.Seconds())
}

// RecordWorkerError counts a failed job.
func (m *Manager) RecordWorkerError() { m.workerErrors.Inc() }

// RecordErrorByComponent counts an error raised by component.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// Package-level helpers backed by the global manager.

func RecordRankingComputed(d time.Duration, performers int) {
	globalManager.RecordRankingComputed(d, performers)
}
func RecordRankingCache(hit bool)                   { globalManager.RecordRankingCache(hit) }
func RecordOddsQuote(predictionType string)         { globalManager.RecordOddsQuote(predictionType) }
func RecordPayloadMalformed()                       { globalManager.RecordPayloadMalformed() }
func RecordSettlement(status string)                { globalManager.RecordSettlement(status) }
func RecordPayout(points float64)                   { globalManager.RecordPayout(points) }
func UpdateQueueSize(size int)                      { globalManager.UpdateQueueSize(size) }
func UpdateQueueCapacity(capacity int)              { globalManager.UpdateQueueCapacity(capacity) }
func RecordQueueEnqueue()                           { globalManager.RecordQueueEnqueue() }
func RecordQueueDequeue()                           { globalManager.RecordQueueDequeue() }
func RecordQueueEnqueueError(reason string)         { globalManager.RecordQueueEnqueueError(reason) }
func UpdateWorkerCount(count int)                   { globalManager.UpdateWorkerCount(count) }
func RecordWorkerProcessingLatency(d time.Duration) { globalManager.RecordWorkerProcessingLatency(d) }
func RecordWorkerError()                            { globalManager.RecordWorkerError() }

func RecordPredictionEvaluated(predictionType string, won bool) {
	globalManager.RecordPredictionEvaluated(predictionType, won)
}

func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// GetRegistry returns the registry backing the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every metric of the global registry to path in the
// text exposition format, for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return WriteRegistryTextfile(path, customRegistry)
}

// WriteRegistryTextfile writes the metrics gathered from g to path.
func WriteRegistryTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
