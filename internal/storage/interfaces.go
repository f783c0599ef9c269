// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/property-service/internal/types"
)

type StorageInterface interface {
	CreateOrganization(ctx context.Context, name string) (*types.Organization, error)
	GetOrganization(ctx context.Context, id int64) (*types.Organization, error)

	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserInOrg(ctx context.Context, orgID int64, id string) (*types.User, error)
	GetUserByEmailInOrg(ctx context.Context, orgID int64, email string) (*types.User, error)
	ListUsersByEmail(ctx context.Context, email string) ([]*types.User, error)
	ListUsersByOrg(ctx context.Context, orgID int64) ([]*types.User, error)
	SetUserActive(ctx context.Context, orgID int64, id string, active bool) error
	SetInvite(ctx context.Context, orgID int64, userID, token string, expiresAt time.Time) error
	GetUserByInviteToken(ctx context.Context, token string) (*types.User, error)
	ConsumeInvite(ctx context.Context, userID, token, passwordHash string) error

	CreateSubscription(ctx context.Context, sub *types.Subscription) (*types.Subscription, error)
	GetOrCreateSubscription(ctx context.Context, defaults *types.Subscription, lock bool) (*types.Subscription, error)
	UpdateSubscriptionPlan(ctx context.Context, orgID int64, plan types.PlanType) (*types.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, orgID int64, status types.SubscriptionStatus, customerID, subscriptionID *string) (*types.Subscription, error)

	ListRecords(ctx context.Context, table string, columns []string, orgID int64, page, size int64) ([]types.Record, error)
	GetRecord(ctx context.Context, table string, columns []string, orgID, id int64) (types.Record, error)
	FindRecords(ctx context.Context, table string, columns []string, orgID int64, filter map[string]any) ([]types.Record, error)
	FindTenantByEmail(ctx context.Context, orgID int64, email string, columns []string) (types.Record, error)
	CreateRecord(ctx context.Context, table string, columns []string, orgID int64, values map[string]any) (types.Record, error)
	UpdateRecord(ctx context.Context, table string, columns []string, orgID, id int64, values map[string]any) (types.Record, error)
	DeleteRecord(ctx context.Context, table string, orgID, id int64) error
	RecordExists(ctx context.Context, table string, orgID, id int64) (bool, error)
	CountActiveRecords(ctx context.Context, table string, orgID int64) (int64, error)

	ListMaintenanceRequests(ctx context.Context, orgID int64, tenantUserID *string) ([]*types.MaintenanceRequest, error)
	GetMaintenanceRequest(ctx context.Context, orgID, id int64) (*types.MaintenanceRequest, error)
	CreateMaintenanceRequest(ctx context.Context, req *types.MaintenanceRequest) (*types.MaintenanceRequest, error)
	UpdateMaintenanceRequest(ctx context.Context, req *types.MaintenanceRequest) (*types.MaintenanceRequest, error)
	DeleteMaintenanceRequest(ctx context.Context, orgID, id int64) error
}
