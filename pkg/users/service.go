// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	hasher  authentication.PasswordHasherInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) ListUsers(ctx context.Context, p *types.Principal) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.ListUsers")
	defer span.End()

	return s.storage.ListUsersByOrg(ctx, p.OrgID)
}

// CreateUser adds an active account to the caller's organization.
func (s *Service) CreateUser(ctx context.Context, p *types.Principal, email, password, role string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.CreateUser")
	defer span.End()

	role = strings.ToLower(strings.TrimSpace(role))
	if !slices.Contains(types.Roles, role) {
		return nil, fmt.Errorf("%w: unknown role %q", types.ErrInvalid, role)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.CreateUser(ctx, &types.User{
		OrgID:        p.OrgID,
		Email:        email,
		PasswordHash: digest,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered in this organization", types.ErrConflict)
		}
		return nil, err
	}

	s.logger.Security().UserCreated(p.UserID, user.ID)

	return user, nil
}

// DeactivateUser disables a member of the caller's organization. Owners
// cannot be deactivated.
func (s *Service) DeactivateUser(ctx context.Context, p *types.Principal, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.DeactivateUser")
	defer span.End()

	user, err := s.storage.GetUserInOrg(ctx, p.OrgID, id)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(user.Role, types.RoleOwner) {
		return nil, fmt.Errorf("%w: owners cannot be deactivated", types.ErrForbidden)
	}

	if err := s.storage.SetUserActive(ctx, p.OrgID, id, false); err != nil {
		return nil, err
	}

	s.logger.Security().UserUpdated(p.UserID, user.ID)

	user.IsActive = false
	return user, nil
}

func NewService(
	storage StorageInterface,
	hasher authentication.PasswordHasherInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		hasher:  hasher,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
