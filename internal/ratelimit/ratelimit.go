// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	httptypes "github.com/canonical/property-service/internal/http/types"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
)

const keyPrefix = "property:ratelimit"

var _ LimiterInterface = (*Limiter)(nil)

// Limiter is a fixed window counter kept in Redis, shared by every replica.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration

	// X-Forwarded-For is only read when the peer is one of these
	trustedProxies []netip.Prefix

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	ctx, span := l.tracer.Start(ctx, "ratelimit.Limiter.Allow")
	defer span.End()

	windowStart := l.now().Truncate(l.window).Unix()
	k := fmt.Sprintf("%s:%s:%d", keyPrefix, key, windowStart)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, l.window)
		return nil
	})
	if err != nil {
		l.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, 0)
		return true, fmt.Errorf("failed to count request: %w", err)
	}

	l.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, 1)

	return incr.Val() <= l.limit, nil
}

// Middleware limits requests per client address. Redis failures let the
// request through.
func (l *Limiter) Middleware(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, l.trustedProxies)
			key := scope + ":" + ip

			allowed, err := l.Allow(r.Context(), key)
			if err != nil {
				l.logger.Warnf("rate limiter unavailable: %v", err)
			}

			if !allowed {
				l.logger.Security().AuthzFailure(ip, "ratelimit:"+scope)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(l.window.Seconds())))
				httptypes.WriteJSON(
					w,
					http.StatusTooManyRequests,
					httptypes.ErrorResponse{Status: http.StatusTooManyRequests, Message: "too many requests"},
					l.logger,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the connection address unless the peer is a trusted
// proxy, in which case it walks X-Forwarded-For from the right and returns
// the first hop that is not itself trusted.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if !isTrusted(host, trusted) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !isTrusted(hop, trusted) {
			return hop
		}
		host = hop
	}

	return host
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}

	return false
}

// ParseTrustedProxies accepts CIDR ranges and bare addresses.
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}

		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return prefixes, nil
}

func NewLimiter(client *redis.Client, limit int, window time.Duration, trustedProxies []netip.Prefix, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Limiter {
	l := new(Limiter)

	l.client = client
	l.limit = int64(limit)
	l.window = window
	l.trustedProxies = trustedProxies
	l.now = time.Now

	l.tracer = tracer
	l.monitor = monitor
	l.logger = logger

	return l
}
