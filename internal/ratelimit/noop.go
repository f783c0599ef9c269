// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"context"
	"net/http"
)

// NoopLimiter allows everything, used when no Redis is configured.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) (bool, error) {
	return true, nil
}

func (NoopLimiter) Middleware(string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func NewNoopLimiter() *NoopLimiter {
	return new(NoopLimiter)
}
