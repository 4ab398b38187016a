package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is the process-wide logger. It discards everything until InitLogger
// or InitFileLogger installs a real one.
var Logger = zap.NewNop()

func InitLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}

// InitFileLogger sends JSON logs to path instead of stdout, for front ends
// that own the terminal. An empty path keeps the no-op logger.
func InitFileLogger(path string) error {
	if path == "" {
		Logger = zap.NewNop()
		return nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building file logger: %w", err)
	}

	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx itself is attached as a zap.Any("context", ctx) field: the otelzap core
// recognises context values and emits the OTLP record with them, so exported
// log records carry the native TraceID and SpanID. The string fields keep
// stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
