package provider

import (
	"context"
	"time"

	"github.com/kbukum/localai-stt/errors"
	"github.com/kbukum/localai-stt/observability"
)

// WithMetrics records request count and latency for each Execute call.
// Failures are also counted under their error code, or "unknown".
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.Metrics
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)
	duration := time.Since(start)

	name := m.inner.Name()
	if err == nil {
		m.metrics.RecordRequest(ctx, name, "ok", duration)
		return output, nil
	}
	code := "unknown"
	if c, ok := errors.CodeOf(err); ok {
		code = string(c)
	}
	m.metrics.RecordError(ctx, name, code)
	m.metrics.RecordRequest(ctx, name, "error", duration)
	return output, err
}
