// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/property-service/internal/logging"
)

func TestNewTracerDisabled(t *testing.T) {
	tracer := NewTracer(NewConfig(false, "property-service", "", "", logging.NewNoopLogger()))

	ctx, span := tracer.Start(context.Background(), "tracing.Test.Disabled")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected a context")
	}
	if span.SpanContext().IsValid() {
		t.Fatal("expected noop span when tracing is disabled")
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NewNoopTracer().Start(context.Background(), "tracing.Test.Noop")
	defer span.End()

	if span.IsRecording() {
		t.Fatal("noop span should not record")
	}
}

func TestTracedSkipsProbes(t *testing.T) {
	for path, want := range map[string]bool{
		"/metrics":        false,
		"/api/v0/status":  false,
		"/auth/login":     true,
		"/api/properties": true,
	} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		if got := traced(r); got != want {
			t.Errorf("traced(%s) = %v, want %v", path, got, want)
		}
	}
}

func TestNoopConfigIsDisabled(t *testing.T) {
	cfg := NewNoopConfig()
	if cfg.Enabled {
		t.Fatal("noop config must disable tracing")
	}

	_, span := NewTracer(cfg).Start(context.Background(), "tracing.Test.NoopConfig")
	defer span.End()

	if span.IsRecording() {
		t.Fatal("span should not record")
	}
}
