// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"net/http"
	"time"

	"github.com/canonical/property-service/internal/authorization"
	"github.com/canonical/property-service/internal/types"
)

// StorageInterface is the subset of internal/storage used by the invitation flow.
type StorageInterface interface {
	GetUserByEmailInOrg(ctx context.Context, orgID int64, email string) (*types.User, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	SetInvite(ctx context.Context, orgID int64, userID, token string, expiresAt time.Time) error
	GetUserByInviteToken(ctx context.Context, token string) (*types.User, error)
	ConsumeInvite(ctx context.Context, userID, token, passwordHash string) error
}

type TxInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type NotifierInterface interface {
	SendInvite(ctx context.Context, email, inviteURL string) error
}

type AuthorizerInterface interface {
	RequireRoles(roles ...string) func(http.Handler) http.Handler
	RequireSubscription(level authorization.GateLevel) func(http.Handler) http.Handler
}

type ServiceInterface interface {
	CreateInvite(ctx context.Context, p *types.Principal, email string) (*Invite, error)
	AcceptInvite(ctx context.Context, token, password string) (string, error)
}
