// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"context"
	"net/http"
)

type LimiterInterface interface {
	// Allow counts one hit for key in the current window and reports whether it is within the limit
	Allow(context.Context, string) (bool, error)
	Middleware(string) func(http.Handler) http.Handler
}
