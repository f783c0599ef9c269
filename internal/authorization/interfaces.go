// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"net/http"

	"github.com/canonical/property-service/internal/types"
)

type AuthorizerInterface interface {
	// CheckRole fails with types.ErrForbidden unless the principal holds one of roles
	CheckRole(context.Context, *types.Principal, ...string) error
	// CheckSubscription resolves the organization subscription, creating a trial
	// when absent, and fails with types.ErrPaymentRequired when its status is
	// not allowed at the given level
	CheckSubscription(context.Context, int64, GateLevel) (*types.Subscription, error)

	RequireRoles(...string) func(http.Handler) http.Handler
	RequireSubscription(GateLevel) func(http.Handler) http.Handler
}

// SubscriptionStorageInterface is the subset of the storage consulted by the gate.
type SubscriptionStorageInterface interface {
	GetOrCreateSubscription(ctx context.Context, defaults *types.Subscription, lock bool) (*types.Subscription, error)
}
