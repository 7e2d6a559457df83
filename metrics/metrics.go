/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics counts lint runs, policy violations and classified commits,
// and pushes them to a Prometheus Pushgateway when one is configured.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Job is the Pushgateway job name.
const Job = "jiralint"

// Recorder records lint metrics into its own registry. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	reg *prometheus.Registry

	runs       *prometheus.CounterVec
	violations *prometheus.CounterVec
	commits    *prometheus.CounterVec
	lookups    *prometheus.HistogramVec
}

// NewRecorder returns a Recorder backed by a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jiralint_runs_total",
				Help: "Total number of pull request evaluations by outcome",
			},
			[]string{"outcome"},
		),
		violations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jiralint_violations_total",
				Help: "Total number of policy violations by kind",
			},
			[]string{"violation"},
		),
		commits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jiralint_commits_total",
				Help: "Total number of validated commits by classification",
			},
			[]string{"reason", "valid"},
		),
		lookups: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jiralint_tracker_lookup_seconds",
				Help:    "Latency of issue tracker lookups",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"result"},
		),
	}
}

// Registry returns the registry metrics are recorded into.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// Run counts one evaluation with the given outcome.
func (r *Recorder) Run(outcome string) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome).Inc()
}

// Violation counts one policy violation.
func (r *Recorder) Violation(kind string) {
	if r == nil {
		return
	}
	r.violations.WithLabelValues(kind).Inc()
}

// Commit counts one validated commit.
func (r *Recorder) Commit(reason string, valid bool) {
	if r == nil {
		return
	}
	r.commits.WithLabelValues(reason, fmt.Sprint(valid)).Inc()
}

// TrackerLookup observes the latency of one tracker lookup.
func (r *Recorder) TrackerLookup(d time.Duration, result string) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(result).Observe(d.Seconds())
}

// Push sends the recorded metrics to the Pushgateway at url, grouped by
// repository.
func (r *Recorder) Push(ctx context.Context, url, repository string) error {
	if r == nil || url == "" {
		return nil
	}
	p := push.New(url, Job).Gatherer(r.reg)
	if repository != "" {
		p = p.Grouping("repository", repository)
	}
	if err := p.PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics: %w", err)
	}
	clog.FromContext(ctx).With("url", url).Debug("Pushed metrics")
	return nil
}
