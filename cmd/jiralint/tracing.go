/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// setupTracing installs a tracer provider that prints spans to stderr when
// enabled. The returned function flushes and stops it.
func setupTracing(ctx context.Context, enabled bool) (func(context.Context), error) {
	if !enabled {
		return func(context.Context) {}, nil
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("creating stdout exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(semconv.ServiceNameKey.String("jiralint"))),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(exp),
	)
	otel.SetTracerProvider(tp)
	clog.FromContext(ctx).Debug("Tracing to stderr")

	return func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			clog.WarnContextf(ctx, "shutting down tracer provider: %v", err)
		}
	}, nil
}
