package pathfinder

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for engine operations.
var (
	tracer = otel.Tracer("cityroutes.pathfinder")
	meter  = otel.Meter("cityroutes.pathfinder")
)

// Metrics for queries and mutations.
var (
	queryLatency  metric.Float64Histogram
	queryTotal    metric.Int64Counter
	mutationTotal metric.Int64Counter
	cacheHits     metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		queryLatency, err = meter.Float64Histogram(
			"cityroutes_query_duration_seconds",
			metric.WithDescription("Duration of graph queries"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		queryTotal, err = meter.Int64Counter(
			"cityroutes_query_total",
			metric.WithDescription("Total number of graph queries by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		mutationTotal, err = meter.Int64Counter(
			"cityroutes_mutation_total",
			metric.WithDescription("Total number of graph mutations by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheHits, err = meter.Int64Counter(
			"cityroutes_query_cache_hits_total",
			metric.WithDescription("Query results served from the epoch cache"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordQueryMetrics records latency and outcome of a query.
// kind is the core.Kind of the failure, or "" on success.
func recordQueryMetrics(ctx context.Context, op string, duration time.Duration, kind string) {
	if err := initMetrics(); err != nil {
		return
	}
	outcome := kind
	if outcome == "" {
		outcome = "ok"
	}
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	)
	queryLatency.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("op", op)))
	queryTotal.Add(ctx, 1, attrs)
}

// recordMutationMetrics counts a mutation attempt.
func recordMutationMetrics(ctx context.Context, op string, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	mutationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.Bool("success", success),
	))
}

// recordCacheHit counts a query served from cache.
func recordCacheHit(ctx context.Context, op string) {
	if err := initMetrics(); err != nil {
		return
	}
	cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// startQuerySpan creates a span for a query operation.
func startQuerySpan(ctx context.Context, op string, epoch uint64, cities ...string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "PathFinder."+op,
		trace.WithAttributes(
			attribute.String("cityroutes.op", op),
			attribute.Int64("cityroutes.epoch", int64(epoch)),
			attribute.StringSlice("cityroutes.cities", cities),
		),
	)
}

// setSpanOutcome annotates a span with the query outcome.
func setSpanOutcome(span trace.Span, kind string, cached bool) {
	span.SetAttributes(
		attribute.String("cityroutes.outcome", kind),
		attribute.Bool("cityroutes.cached", cached),
	)
}
