// Package telemetry exports Prometheus metrics and an OpenTelemetry tracer
// for the classification service.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "brandquery"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Processing metrics
	RecordsClassified *prometheus.CounterVec
	RecordsMatched    *prometheus.CounterVec
	ClassifyDuration  prometheus.Histogram
	BatchSize         prometheus.Histogram

	// Rule engine metrics
	RuleMatchDuration prometheus.Histogram
	RulesEvaluated    prometheus.Counter
	RulesMatched      prometheus.Counter
	PrefilterSkipped  prometheus.Counter

	// Ingestion backpressure metrics
	QueueDepth    prometheus.Gauge
	RecordsShed   prometheus.Counter
	DrainDuration prometheus.Histogram

	// Store metrics
	StoreWriteDuration *prometheus.HistogramVec
	StoreConflicts     prometheus.Counter
}

// Provider wraps the metrics registry and the tracer.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics registered via
// promauto's default registry.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initProcessingMetrics(m)
	initRuleEngineMetrics(m)
	initBackpressureMetrics(m)
	initStoreMetrics(m)
	return m
}

func initProcessingMetrics(m *Metrics) {
	m.RecordsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brandquery_records_classified_total",
		Help: "Total records run through Classify",
	}, []string{"platform"})

	m.RecordsMatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brandquery_records_matched_total",
		Help: "Total records that matched a brand rule",
	}, []string{"platform", "topic"})

	m.ClassifyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "brandquery_classify_duration_seconds",
		Help:    "Time to classify a single piece of text",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "brandquery_batch_size",
		Help:    "Number of records drained per ingestion batch",
		Buckets: []float64{1, 2, 5, 10, 20},
	})
}

func initRuleEngineMetrics(m *Metrics) {
	m.RuleMatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "brandquery_rule_match_duration_seconds",
		Help:    "Time spent evaluating the rule catalog against one article",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05},
	})

	m.RulesEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brandquery_rules_evaluated_total",
		Help: "Total individual rule AST evaluations",
	})

	m.RulesMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brandquery_rules_matched_total",
		Help: "Total rule evaluations that matched",
	})

	m.PrefilterSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brandquery_prefilter_skipped_total",
		Help: "Total rule evaluations skipped by the Aho-Corasick literal prefilter",
	})
}

func initBackpressureMetrics(m *Metrics) {
	m.QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brandquery_queue_depth",
		Help: "Current pending records in the ingestion queue",
	})

	m.RecordsShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brandquery_records_shed_total",
		Help: "Total webhook records rejected because the queue was full",
	})

	m.DrainDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "brandquery_drain_duration_seconds",
		Help:    "Time to drain and process one ingestion batch",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	})
}

func initStoreMetrics(m *Metrics) {
	m.StoreWriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brandquery_store_write_duration_seconds",
		Help:    "Time spent writing a record to the durable store",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"container"})

	m.StoreConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brandquery_store_conflicts_total",
		Help: "Total duplicate-id conflicts treated as idempotent success",
	})
}

// RecordClassify records a single Classify() call's outcome and duration.
func (p *Provider) RecordClassify(platform string, matched bool, topic string, duration time.Duration) {
	p.Metrics.RecordsClassified.WithLabelValues(platform).Inc()
	p.Metrics.ClassifyDuration.Observe(duration.Seconds())
	if matched {
		p.Metrics.RecordsMatched.WithLabelValues(platform, topic).Inc()
	}
}

// RecordRuleMatch records rule-engine-level metrics for one Classify call.
func (p *Provider) RecordRuleMatch(duration time.Duration, evaluated, matched, skipped int) {
	p.Metrics.RuleMatchDuration.Observe(duration.Seconds())
	p.Metrics.RulesEvaluated.Add(float64(evaluated))
	p.Metrics.RulesMatched.Add(float64(matched))
	p.Metrics.PrefilterSkipped.Add(float64(skipped))
}

// SetQueueDepth sets the current ingestion queue depth gauge.
func (p *Provider) SetQueueDepth(depth int) {
	p.Metrics.QueueDepth.Set(float64(depth))
}

// RecordShed increments the shed-records counter.
func (p *Provider) RecordShed() {
	p.Metrics.RecordsShed.Inc()
}

// RecordDrain records the duration and size of a completed ingestion batch.
func (p *Provider) RecordDrain(duration time.Duration, size int) {
	p.Metrics.DrainDuration.Observe(duration.Seconds())
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordStoreWrite records the duration of a store write, labeled by
// container ("raw" or "processed").
func (p *Provider) RecordStoreWrite(container string, duration time.Duration) {
	p.Metrics.StoreWriteDuration.WithLabelValues(container).Observe(duration.Seconds())
}

// RecordStoreConflict increments the idempotent-conflict counter.
func (p *Provider) RecordStoreConflict() {
	p.Metrics.StoreConflicts.Inc()
}

// StartSpan starts a new trace span. The caller must end it with span.End().
//
//nolint:spancheck // caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
