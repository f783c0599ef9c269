// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/canonical/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the webhooks package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	UpdateSubscriptionStatus(ctx context.Context, orgID int64, status types.SubscriptionStatus, customerID, subscriptionID *string) (*types.Subscription, error)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleBillingEvent(ctx context.Context, event *BillingEvent) (*types.Subscription, error)
}
