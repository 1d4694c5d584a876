// Package observe provides the OpenTelemetry instruments and span helpers
// shared by the graph and the gateway.
//
// Instruments are created from a [metric.MeterProvider] by [NewMetrics];
// tests should pass an SDK provider backed by a manual reader. Without an
// SDK installed the global provider is a no-op, so recording is free.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName is the scope name used for all quill instruments.
const instrumentationName = "github.com/jacentio/quill"

// StatusOK is the status attribute recorded for successful operations.
const StatusOK = "ok"

// Metrics holds all metric instruments. All fields are safe for concurrent use.
type Metrics struct {
	// Operations counts graph operations. Attributes: "op", "status".
	Operations metric.Int64Counter

	// OperationDuration tracks operation latency, lock wait included. Attribute: "op".
	OperationDuration metric.Float64Histogram

	// CascadeRemoved counts entities removed as a side effect of another
	// delete. Attribute: "entity_type".
	CascadeRemoved metric.Int64Counter

	// Entities tracks live entities. Attribute: "entity_type".
	Entities metric.Int64UpDownCounter

	// Requests counts gateway requests, queries included. Attributes: "op", "status".
	Requests metric.Int64Counter
}

// latencyBuckets are histogram boundaries in seconds, sized for in-memory work.
var latencyBuckets = []float64{
	0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1,
}

// NewMetrics creates all instruments from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(instrumentationName)
	var err error
	met := &Metrics{}

	if met.Operations, err = m.Int64Counter("quill.operations",
		metric.WithDescription("Graph operations by name and outcome."),
	); err != nil {
		return nil, err
	}
	if met.OperationDuration, err = m.Float64Histogram("quill.operation.duration",
		metric.WithDescription("Latency of graph operations."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CascadeRemoved, err = m.Int64Counter("quill.cascade.removed",
		metric.WithDescription("Entities removed by cascading deletes."),
	); err != nil {
		return nil, err
	}
	if met.Entities, err = m.Int64UpDownCounter("quill.entities",
		metric.WithDescription("Number of entities currently stored."),
	); err != nil {
		return nil, err
	}
	if met.Requests, err = m.Int64Counter("quill.gateway.requests",
		metric.WithDescription("Requests served by the gateway."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a package-level [Metrics] built from the global
// meter provider on first use.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordOperation records one finished operation.
func (m *Metrics) RecordOperation(ctx context.Context, op, status string, elapsed time.Duration) {
	m.Operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("status", status),
	))
	m.OperationDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("op", op),
	))
}

// RecordRemoved records the entity types removed by one delete, in removal
// order. The last element is the delete target; the rest were cascaded.
func (m *Metrics) RecordRemoved(ctx context.Context, entityTypes []string) {
	for i, entityType := range entityTypes {
		attrs := metric.WithAttributes(attribute.String("entity_type", entityType))
		m.Entities.Add(ctx, -1, attrs)
		if i < len(entityTypes)-1 {
			m.CascadeRemoved.Add(ctx, 1, attrs)
		}
	}
}

// RecordCreated records newly stored entities of a type.
func (m *Metrics) RecordCreated(ctx context.Context, entityType string, n int64) {
	m.Entities.Add(ctx, n, metric.WithAttributes(attribute.String("entity_type", entityType)))
}

// RecordRequest records one gateway request and its outcome.
func (m *Metrics) RecordRequest(ctx context.Context, op, status string) {
	m.Requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("status", status),
	))
}
