package observability

import (
	"context"
	"net/http"

	"wordcalc/internal/handlers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises error handling across all domains: records the error
// on the span, increments the provided error counter, logs with trace context,
// and writes a JSON error HTTP response.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName string, resp handlers.ErrorResponse, err error, status int, w http.ResponseWriter) {
	span.RecordError(err)
	span.SetStatus(codes.Error, resp.Error)

	attrs := []attribute.KeyValue{attribute.String("operation", opName)}
	if resp.Kind != "" {
		attrs = append(attrs, attribute.String("kind", resp.Kind))
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))

	fields := []zap.Field{
		zap.String("operation", opName),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	}
	if resp.Kind != "" {
		fields = append(fields, zap.String("kind", resp.Kind))
	}

	// Input errors are expected traffic; only server faults log at error level.
	if status >= http.StatusInternalServerError {
		logger.Error(resp.Error, fields...)
	} else {
		logger.Warn(resp.Error, fields...)
	}

	handlers.WriteErrorResponse(w, status, resp)
}
