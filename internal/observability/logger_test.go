package observability

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLoggerWithTraceWithoutSpanReturnsBaseLogger(t *testing.T) {
	base := zap.NewNop()
	oldLogger := Logger
	Logger = base
	t.Cleanup(func() { Logger = oldLogger })

	if got := LoggerWithTrace(context.Background()); got != base {
		t.Fatal("expected base logger when no span is active")
	}
}

func TestInitFileLoggerWritesJSONToFile(t *testing.T) {
	oldLogger := Logger
	t.Cleanup(func() { Logger = oldLogger })

	path := filepath.Join(t.TempDir(), "calc.log")
	if err := InitFileLogger(path); err != nil {
		t.Fatalf("initialising file logger: %v", err)
	}

	Logger.Info("key pressed", zap.String("key", "7"))
	SyncLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"key pressed"`) {
		t.Fatalf("expected log entry in file, got %q", data)
	}
}

func TestInitFileLoggerEmptyPathIsNop(t *testing.T) {
	oldLogger := Logger
	t.Cleanup(func() { Logger = oldLogger })

	if err := InitFileLogger(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Logger.Core().Enabled(zap.ErrorLevel) {
		t.Fatal("expected no-op logger for empty path")
	}
}
