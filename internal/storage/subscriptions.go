// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/property-service/internal/db"
	"github.com/canonical/property-service/internal/types"
)

var subscriptionColumns = []string{
	"id", "org_id", "plan_type", "status", "trial_ends_at", "external_customer_id", "external_subscription_id", "created_at", "updated_at",
}

func scanSubscription(row rowScanner) (*types.Subscription, error) {
	var sub types.Subscription
	err := row.Scan(
		&sub.ID,
		&sub.OrgID,
		&sub.PlanType,
		&sub.Status,
		&sub.TrialEndsAt,
		&sub.ExternalCustomerID,
		&sub.ExternalSubscriptionID,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Storage) CreateSubscription(ctx context.Context, sub *types.Subscription) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateSubscription")
	defer span.End()

	if err := s.insertSubscription(ctx, sub, false); err != nil {
		return nil, err
	}

	return s.getSubscription(ctx, sub.OrgID, false)
}

// GetOrCreateSubscription returns the organization subscription, inserting the
// defaults first when none exists. Concurrent first access is resolved by the
// unique org_id constraint. With lock set the row is read FOR SHARE on
// PostgreSQL so its status holds until the surrounding transaction ends.
func (s *Storage) GetOrCreateSubscription(ctx context.Context, defaults *types.Subscription, lock bool) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrCreateSubscription")
	defer span.End()

	sub, err := s.getSubscription(ctx, defaults.OrgID, lock)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := s.insertSubscription(ctx, defaults, true); err != nil {
		return nil, err
	}

	return s.getSubscription(ctx, defaults.OrgID, lock)
}

func (s *Storage) insertSubscription(ctx context.Context, sub *types.Subscription, ignoreConflict bool) error {
	now := s.now()

	q := s.db.Statement(ctx).
		Insert("subscriptions").
		Columns("org_id", "plan_type", "status", "trial_ends_at", "external_customer_id", "external_subscription_id", "created_at", "updated_at").
		Values(sub.OrgID, sub.PlanType, sub.Status, sub.TrialEndsAt, sub.ExternalCustomerID, sub.ExternalSubscriptionID, now, now)

	if ignoreConflict {
		q = q.Suffix("ON CONFLICT (org_id) DO NOTHING")
	}

	if _, err := q.ExecContext(ctx); err != nil {
		return wrapConstraintError(err, "failed to insert subscription")
	}

	return nil
}

func (s *Storage) getSubscription(ctx context.Context, orgID int64, lock bool) (*types.Subscription, error) {
	q := s.db.Statement(ctx).
		Select(subscriptionColumns...).
		From("subscriptions").
		Where(sq.Eq{"org_id": orgID})

	if lock && s.db.Dialect() == db.DialectPostgres {
		q = q.Suffix("FOR SHARE")
	}

	sub, err := scanSubscription(q.QueryRowContext(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return sub, nil
}

func (s *Storage) UpdateSubscriptionPlan(ctx context.Context, orgID int64, plan types.PlanType) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateSubscriptionPlan")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("subscriptions").
		Set("plan_type", plan).
		Set("updated_at", s.now()).
		Where(sq.Eq{"org_id": orgID}).
		ExecContext(ctx)

	if err := affectedOne(res, err, "failed to update subscription plan"); err != nil {
		return nil, err
	}

	return s.getSubscription(ctx, orgID, false)
}

func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, orgID int64, status types.SubscriptionStatus, customerID, subscriptionID *string) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateSubscriptionStatus")
	defer span.End()

	q := s.db.Statement(ctx).
		Update("subscriptions").
		Set("status", status).
		Set("updated_at", s.now()).
		Where(sq.Eq{"org_id": orgID})

	if customerID != nil {
		q = q.Set("external_customer_id", *customerID)
	}
	if subscriptionID != nil {
		q = q.Set("external_subscription_id", *subscriptionID)
	}

	res, err := q.ExecContext(ctx)
	if err := affectedOne(res, err, "failed to update subscription status"); err != nil {
		return nil, err
	}

	return s.getSubscription(ctx, orgID, false)
}
