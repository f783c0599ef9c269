// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"time"

	"github.com/canonical/property-service/internal/types"
)

// Usage is the billable footprint of an organization.
type Usage struct {
	PlanType      types.PlanType           `json:"plan_type"`
	Status        types.SubscriptionStatus `json:"status"`
	ActiveUnits   int64                    `json:"active_units"`
	ActiveTenants int64                    `json:"active_tenants"`
	TrialEndsAt   *time.Time               `json:"trial_ends_at"`
}

type ChangePlanRequest struct {
	PlanType types.PlanType `json:"plan_type" validate:"required"`
}
