// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"net/http"

	"github.com/canonical/property-service/internal/authorization"
	"github.com/canonical/property-service/internal/types"
)

type StorageInterface interface {
	ListUsersByOrg(ctx context.Context, orgID int64) ([]*types.User, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserInOrg(ctx context.Context, orgID int64, id string) (*types.User, error)
	SetUserActive(ctx context.Context, orgID int64, id string, active bool) error
}

type AuthorizerInterface interface {
	RequireRoles(roles ...string) func(http.Handler) http.Handler
	RequireSubscription(level authorization.GateLevel) func(http.Handler) http.Handler
}

type ServiceInterface interface {
	ListUsers(ctx context.Context, p *types.Principal) ([]*types.User, error)
	CreateUser(ctx context.Context, p *types.Principal, email, password, role string) (*types.User, error)
	DeactivateUser(ctx context.Context, p *types.Principal, id string) (*types.User, error)
}
