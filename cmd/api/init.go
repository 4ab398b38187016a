package main

import (
	"context"
	"errors"

	"wordcalc/internal/calculator"
	"wordcalc/internal/observability"
)

// initTelemetry starts the OTLP trace, metric and log pipelines and returns a
// single shutdown func for all of them.
func initTelemetry(ctx context.Context) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, start := range []func(context.Context) (func(context.Context) error, error){
		observability.InitTracing,
		observability.InitMetrics,
		observability.InitLogging,
	} {
		fn, err := start(ctx)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}

// initMetrics registers the calculator instruments against the global meter
// provider. With telemetry disabled they bind to the no-op provider.
func initMetrics() error {
	return calculator.InitMetrics()
}
