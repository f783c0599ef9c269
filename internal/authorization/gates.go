// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"slices"
	"time"

	"github.com/canonical/property-service/internal/types"
)

// GateLevel selects which subscription statuses let a request through.
type GateLevel int

const (
	// ReadGate degrades gracefully on billing delinquency.
	ReadGate GateLevel = iota
	// WriteGate blocks mutations once payment is overdue.
	WriteGate
)

func (l GateLevel) String() string {
	if l == WriteGate {
		return "write"
	}
	return "read"
}

var allowedStatuses = map[GateLevel][]types.SubscriptionStatus{
	ReadGate:  {types.SubscriptionTrialing, types.SubscriptionActive, types.SubscriptionPastDue},
	WriteGate: {types.SubscriptionTrialing, types.SubscriptionActive},
}

// Allows reports whether a subscription in status may pass the gate.
func (l GateLevel) Allows(status types.SubscriptionStatus) bool {
	return slices.Contains(allowedStatuses[l], status)
}

// DefaultSubscription is the trial created for organizations seen without one.
func DefaultSubscription(orgID int64, trialEnd time.Time) *types.Subscription {
	return &types.Subscription{
		OrgID:       orgID,
		PlanType:    types.PlanPerUnit,
		Status:      types.SubscriptionTrialing,
		TrialEndsAt: &trialEnd,
	}
}
