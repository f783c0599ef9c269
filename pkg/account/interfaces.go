// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package account

import (
	"context"

	"github.com/canonical/property-service/internal/types"
)

// StorageInterface is the subset of internal/storage used by the account flows.
type StorageInterface interface {
	CountUsers(ctx context.Context) (int64, error)
	CreateOrganization(ctx context.Context, name string) (*types.Organization, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	CreateSubscription(ctx context.Context, sub *types.Subscription) (*types.Subscription, error)
	ListUsersByEmail(ctx context.Context, email string) ([]*types.User, error)
}

// TxInterface runs fn inside a database transaction.
type TxInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type ServiceInterface interface {
	Bootstrap(ctx context.Context, orgName, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}
