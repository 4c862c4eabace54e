package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics holds OpenTelemetry metric instruments. They are exported
// through the global meter provider set up by InitOTel.
type OTelMetrics struct {
	cacheHitsTotal    metric.Int64Counter
	cacheMissesTotal  metric.Int64Counter
	treeBuildDuration metric.Float64Histogram
	treeNodes         metric.Int64Histogram
}

// NewOTelMetrics creates a new OTel metrics instance
func NewOTelMetrics() (*OTelMetrics, error) {
	meter := otel.Meter("github.com/platinummonkey/folio")

	m := &OTelMetrics{}
	var err error

	m.cacheHitsTotal, err = meter.Int64Counter(
		"cache.hits.total",
		metric.WithDescription("Total number of cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache_hits_total counter: %w", err)
	}

	m.cacheMissesTotal, err = meter.Int64Counter(
		"cache.misses.total",
		metric.WithDescription("Total number of cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache_misses_total counter: %w", err)
	}

	m.treeBuildDuration, err = meter.Float64Histogram(
		"category.tree.build.duration",
		metric.WithDescription("Category tree assembly duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree_build_duration histogram: %w", err)
	}

	m.treeNodes, err = meter.Int64Histogram(
		"category.tree.nodes",
		metric.WithDescription("Number of categories per tree build"),
		metric.WithUnit("{category}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree_nodes histogram: %w", err)
	}

	return m, nil
}

func cacheAttrs(layer, kind string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("cache.layer", layer),
		attribute.String("extension.kind", kind),
	)
}

// RecordCacheHit records a cache hit
func (m *OTelMetrics) RecordCacheHit(ctx context.Context, layer, kind string) {
	m.cacheHitsTotal.Add(ctx, 1, cacheAttrs(layer, kind))
}

// RecordCacheMiss records a cache miss
func (m *OTelMetrics) RecordCacheMiss(ctx context.Context, layer, kind string) {
	m.cacheMissesTotal.Add(ctx, 1, cacheAttrs(layer, kind))
}

// RecordTreeBuild records one category tree assembly
func (m *OTelMetrics) RecordTreeBuild(ctx context.Context, duration time.Duration, nodes int) {
	m.treeBuildDuration.Record(ctx, duration.Seconds())
	m.treeNodes.Record(ctx, int64(nodes))
}
