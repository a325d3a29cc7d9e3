// Package observability wires OpenTelemetry tracing and metrics.
//
//	tp, err := observability.InitTracer(ctx, cfg.TracerConfig("localai-stt", version.GetShortVersion(), "production"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "localai-stt.transcribe")
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("localai-stt"))
//	metrics.RecordRequest(ctx, "localai", "ok", elapsed)
//
// Without Init* calls the global no-op providers are used, so spans and
// instruments are always safe to create.
package observability
