// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/canonical/property-service/internal/authorization"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage     StorageInterface
	trialPeriod time.Duration

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) GetSubscription(ctx context.Context, orgID int64) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.GetSubscription")
	defer span.End()

	return s.subscription(ctx, orgID)
}

func (s *Service) GetUsage(ctx context.Context, orgID int64) (*Usage, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.GetUsage")
	defer span.End()

	sub, err := s.subscription(ctx, orgID)
	if err != nil {
		return nil, err
	}

	units, err := s.storage.CountActiveRecords(ctx, "units", orgID)
	if err != nil {
		return nil, err
	}

	tenants, err := s.storage.CountActiveRecords(ctx, "tenants", orgID)
	if err != nil {
		return nil, err
	}

	return &Usage{
		PlanType:      sub.PlanType,
		Status:        sub.Status,
		ActiveUnits:   units,
		ActiveTenants: tenants,
		TrialEndsAt:   sub.TrialEndsAt,
	}, nil
}

// ChangePlan switches the pricing model. It is allowed whatever the
// subscription status so delinquent organizations can remediate.
func (s *Service) ChangePlan(ctx context.Context, orgID int64, plan types.PlanType) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.ChangePlan")
	defer span.End()

	if !plan.Valid() {
		return nil, fmt.Errorf("%w: unknown plan type %q", types.ErrInvalid, plan)
	}

	if _, err := s.subscription(ctx, orgID); err != nil {
		return nil, err
	}

	return s.storage.UpdateSubscriptionPlan(ctx, orgID, plan)
}

func (s *Service) subscription(ctx context.Context, orgID int64) (*types.Subscription, error) {
	return s.storage.GetOrCreateSubscription(ctx, authorization.DefaultSubscription(orgID, s.now().Add(s.trialPeriod)), false)
}

func NewService(
	storage StorageInterface,
	trialPeriod time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:     storage,
		trialPeriod: trialPeriod,
		now:         func() time.Time { return time.Now().UTC() },
		tracer:      tracer,
		monitor:     monitor,
		logger:      logger,
	}
}
