// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"
	"net/http"

	"github.com/canonical/property-service/internal/authorization"
	"github.com/canonical/property-service/internal/types"
)

type StorageInterface interface {
	GetOrCreateSubscription(ctx context.Context, defaults *types.Subscription, lock bool) (*types.Subscription, error)
	UpdateSubscriptionPlan(ctx context.Context, orgID int64, plan types.PlanType) (*types.Subscription, error)
	CountActiveRecords(ctx context.Context, table string, orgID int64) (int64, error)
}

type AuthorizerInterface interface {
	RequireRoles(roles ...string) func(http.Handler) http.Handler
	RequireSubscription(level authorization.GateLevel) func(http.Handler) http.Handler
}

type ServiceInterface interface {
	GetSubscription(ctx context.Context, orgID int64) (*types.Subscription, error)
	GetUsage(ctx context.Context, orgID int64) (*Usage, error)
	ChangePlan(ctx context.Context, orgID int64, plan types.PlanType) (*types.Subscription, error)
}
