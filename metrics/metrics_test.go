/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.Run("passed")
	r.Run("failed")
	r.Run("failed")
	r.Violation("missing_branch_key")
	r.Commit("key", true)
	r.Commit("invalid", false)
	r.Commit("invalid", false)
	r.TrackerLookup(150*time.Millisecond, "ok")

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "passed runs", got: testutil.ToFloat64(r.runs.WithLabelValues("passed")), want: 1},
		{name: "failed runs", got: testutil.ToFloat64(r.runs.WithLabelValues("failed")), want: 2},
		{name: "violations", got: testutil.ToFloat64(r.violations.WithLabelValues("missing_branch_key")), want: 1},
		{name: "valid key commits", got: testutil.ToFloat64(r.commits.WithLabelValues("key", "true")), want: 1},
		{name: "invalid commits", got: testutil.ToFloat64(r.commits.WithLabelValues("invalid", "false")), want: 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(r.lookups); n != 1 {
		t.Errorf("lookup series = %d, want 1", n)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Run("passed")
	r.Violation("x")
	r.Commit("key", true)
	r.TrackerLookup(time.Second, "ok")
	if r.Registry() != nil {
		t.Error("Registry() on nil recorder should be nil")
	}
	if err := r.Push(context.Background(), "http://unused", "acme/widgets"); err != nil {
		t.Errorf("Push() on nil recorder error = %v", err)
	}
}

func TestPush(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.Run("passed")
	if err := r.Push(context.Background(), srv.URL, "widgets"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	if want := "/metrics/job/" + Job + "/repository/widgets"; gotPath != want {
		t.Errorf("push path = %q, want %q", gotPath, want)
	}
	if !strings.Contains(gotBody, "jiralint_runs_total") {
		t.Error("pushed body does not contain jiralint_runs_total")
	}
}

func TestPushSkippedWithoutURL(t *testing.T) {
	if err := NewRecorder().Push(context.Background(), "", "widgets"); err != nil {
		t.Errorf("Push(\"\") error = %v", err)
	}
}

func TestPushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.Run("passed")
	if err := r.Push(context.Background(), srv.URL, "widgets"); err == nil {
		t.Error("Push() error = nil, want error")
	}
}
