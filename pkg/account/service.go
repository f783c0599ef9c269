// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage     StorageInterface
	tx          TxInterface
	hasher      authentication.PasswordHasherInterface
	tokens      authentication.TokenServiceInterface
	trialPeriod time.Duration

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Bootstrap provisions the first organization with its owner and a trial
// subscription. It only succeeds against an empty user table.
func (s *Service) Bootstrap(ctx context.Context, orgName, email, password string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "account.Service.Bootstrap")
	defer span.End()

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	var owner *types.User
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		count, err := s.storage.CountUsers(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: already bootstrapped", types.ErrConflict)
		}

		org, err := s.storage.CreateOrganization(ctx, strings.TrimSpace(orgName))
		if err != nil {
			return err
		}

		owner, err = s.storage.CreateUser(ctx, &types.User{
			OrgID:        org.ID,
			Email:        email,
			PasswordHash: digest,
			Role:         types.RoleOwner,
			IsActive:     true,
		})
		if err != nil {
			return err
		}

		trialEnd := s.now().Add(s.trialPeriod)
		_, err = s.storage.CreateSubscription(ctx, &types.Subscription{
			OrgID:       org.ID,
			PlanType:    types.PlanPerUnit,
			Status:      types.SubscriptionTrialing,
			TrialEndsAt: &trialEnd,
		})

		return err
	})
	if err != nil {
		return "", err
	}

	s.logger.Security().UserCreated("bootstrap", owner.ID)

	return s.issue(owner)
}

// Login returns a session token for the active user matching the
// credentials. Unknown emails, wrong passwords and inactive accounts are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "account.Service.Login")
	defer span.End()

	users, err := s.storage.ListUsersByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	for _, u := range users {
		if !u.IsActive || !s.hasher.Verify(password, u.PasswordHash) {
			continue
		}

		s.logger.Security().AuthnLoginSuccess(u.ID)
		return s.issue(u)
	}

	s.logger.Security().AuthnLoginFail(email)

	return "", fmt.Errorf("%w: invalid credentials", types.ErrNotAuthenticated)
}

func (s *Service) issue(u *types.User) (string, error) {
	token, err := s.tokens.Issue(u.ID, u.OrgID, u.Role)
	if err != nil {
		return "", err
	}

	s.logger.Security().AuthnTokenCreated(u.ID)

	return token, nil
}

func NewService(
	storage StorageInterface,
	tx TxInterface,
	hasher authentication.PasswordHasherInterface,
	tokens authentication.TokenServiceInterface,
	trialPeriod time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:     storage,
		tx:          tx,
		hasher:      hasher,
		tokens:      tokens,
		trialPeriod: trialPeriod,
		now:         func() time.Time { return time.Now().UTC() },
		tracer:      tracer,
		monitor:     monitor,
		logger:      logger,
	}
}
