// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"fmt"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HandleBillingEvent applies a subscription transition reported by the
// payment provider. Cancellations always land on the canceled status.
func (s *Service) HandleBillingEvent(ctx context.Context, event *BillingEvent) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleBillingEvent")
	defer span.End()

	status := event.Status
	switch event.Type {
	case EventSubscriptionCanceled:
		status = types.SubscriptionCanceled
	case EventSubscriptionUpdated:
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown subscription status %q", types.ErrInvalid, status)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported event %q", types.ErrInvalid, event.Type)
	}

	sub, err := s.storage.UpdateSubscriptionStatus(ctx, event.OrgID, status, event.CustomerID, event.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s for org %d: %w", event.Type, event.OrgID, err)
	}

	s.logger.Infof("subscription of org %d is now %s", event.OrgID, sub.Status)
	return sub, nil
}
