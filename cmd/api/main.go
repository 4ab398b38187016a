package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"wordcalc/internal/calculator"
	"wordcalc/internal/config"
	"wordcalc/internal/observability"
	"wordcalc/internal/server"
	"wordcalc/internal/words"
)

func main() {

	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger()
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics and log export
	if cfg.Telemetry {
		shutdown, err := initTelemetry(ctx)
		if err != nil {
			panic(err)
		}
		defer shutdown(ctx)
	}

	if err := initMetrics(); err != nil {
		panic(err)
	}

	// Calculator
	cache, err := words.NewCache(cfg.WordsCacheSize, words.Converter{})
	if err != nil {
		panic(err)
	}

	sessions, err := calculator.NewSessionStore(cfg.MaxSessions, cache, prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}

	// Router
	router := server.NewRouter(calculator.NewHandler(sessions, cache))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.Bool("telemetry", cfg.Telemetry),
			zap.Int("max_sessions", cfg.MaxSessions),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Warn("server shutdown", zap.Error(err))
	}
}
