// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"time"

	"github.com/canonical/property-service/internal/types"
)

const (
	EventSubscriptionUpdated  = "subscription.updated"
	EventSubscriptionCanceled = "subscription.canceled"

	SignatureHeader = "X-Signature"
	TimestampHeader = "X-Signature-Timestamp"
	signaturePrefix = "sha256="

	// SignatureTolerance bounds the clock distance between the signed
	// timestamp and receipt.
	SignatureTolerance = 5 * time.Minute
)

// BillingEvent is pushed by the payment provider when a subscription changes.
type BillingEvent struct {
	Type           string                   `json:"type" validate:"required,oneof=subscription.updated subscription.canceled"`
	OrgID          int64                    `json:"org_id" validate:"required,gt=0"`
	Status         types.SubscriptionStatus `json:"status"`
	CustomerID     *string                  `json:"customer_id"`
	SubscriptionID *string                  `json:"subscription_id"`
}
