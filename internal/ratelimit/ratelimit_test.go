// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
)

func newTestLimiter(t *testing.T, limit int, trusted ...netip.Prefix) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	l := NewLimiter(client, limit, time.Minute, trusted, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	fixed := time.Date(2026, 3, 1, 10, 0, 30, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	return l, mr
}

func TestLimiterAllow(t *testing.T) {
	l, mr := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "login:1.2.3.4")
		if err != nil || !allowed {
			t.Fatalf("request %d: expected allowed, got %v %v", i, allowed, err)
		}
	}

	allowed, err := l.Allow(ctx, "login:1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("expected fourth request to be limited")
	}

	if allowed, _ := l.Allow(ctx, "login:5.6.7.8"); !allowed {
		t.Error("expected other clients to be unaffected")
	}

	keys := mr.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected two counters, got %v", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected counter to expire within the window, got %v", ttl)
	}

	l.now = func() time.Time { return time.Date(2026, 3, 1, 10, 1, 5, 0, time.UTC) }
	if allowed, _ := l.Allow(ctx, "login:1.2.3.4"); !allowed {
		t.Error("expected a new window to reset the counter")
	}
}

func TestLimiterFailsOpen(t *testing.T) {
	l, mr := newTestLimiter(t, 1)
	mr.Close()

	allowed, err := l.Allow(context.Background(), "login:1.2.3.4")
	if err == nil {
		t.Fatal("expected error with redis down")
	}
	if !allowed {
		t.Fatal("expected limiter to fail open")
	}
}

func TestLimiterMiddleware(t *testing.T) {
	l, _ := newTestLimiter(t, 2)

	handler := l.Middleware("login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestLimiterMiddlewareIgnoresSpoofedForwardedFor(t *testing.T) {
	l, _ := newTestLimiter(t, 2)

	handler := l.Middleware("login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "198.51.100.7:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		last = rr.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("expected rotating X-Forwarded-For to share one counter, got %d", last)
	}
}

func TestClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []netip.Prefix
		expected   string
	}{
		{"remote address", "192.168.1.2:1234", "", proxies, "192.168.1.2"},
		{"no port", "192.168.1.2", "", proxies, "192.168.1.2"},
		{"forwarded from untrusted peer", "198.51.100.7:1234", "203.0.113.9", proxies, "198.51.100.7"},
		{"forwarded without trusted proxies", "10.0.0.1:1234", "203.0.113.9", nil, "10.0.0.1"},
		{"trusted proxy", "10.0.0.1:1234", "203.0.113.9", proxies, "203.0.113.9"},
		{"spoofed leftmost hop", "10.0.0.1:1234", "1.1.1.1, 203.0.113.9", proxies, "203.0.113.9"},
		{"chain of trusted proxies", "10.0.0.1:1234", "203.0.113.9, 192.0.2.1, 10.2.3.4", proxies, "203.0.113.9"},
		{"only trusted hops", "10.0.0.1:1234", "10.9.9.9", proxies, "10.9.9.9"},
		{"trusted proxy without header", "10.0.0.1:1234", "", proxies, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := clientIP(req, tt.trusted); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{" 10.1.2.3/8 ", "", "::1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prefixes) != 2 || prefixes[0].String() != "10.0.0.0/8" || prefixes[1].String() != "::1/128" {
		t.Fatalf("unexpected prefixes %v", prefixes)
	}

	if _, err := ParseTrustedProxies([]string{"not-an-ip"}); err == nil {
		t.Error("expected an error for a malformed entry")
	}
}

func TestNoopLimiter(t *testing.T) {
	l := NewNoopLimiter()
	if allowed, err := l.Allow(context.Background(), "x"); !allowed || err != nil {
		t.Fatal("expected noop limiter to allow")
	}
}
