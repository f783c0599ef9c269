// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package maintenance

import (
	"context"
	"net/http"

	"github.com/canonical/property-service/internal/authorization"
	"github.com/canonical/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the maintenance package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	ListMaintenanceRequests(ctx context.Context, orgID int64, tenantUserID *string) ([]*types.MaintenanceRequest, error)
	GetMaintenanceRequest(ctx context.Context, orgID, id int64) (*types.MaintenanceRequest, error)
	CreateMaintenanceRequest(ctx context.Context, req *types.MaintenanceRequest) (*types.MaintenanceRequest, error)
	UpdateMaintenanceRequest(ctx context.Context, req *types.MaintenanceRequest) (*types.MaintenanceRequest, error)
	DeleteMaintenanceRequest(ctx context.Context, orgID, id int64) error
	RecordExists(ctx context.Context, table string, orgID, id int64) (bool, error)
}

type AuthorizerInterface interface {
	RequireSubscription(level authorization.GateLevel) func(http.Handler) http.Handler
}

type ServiceInterface interface {
	List(ctx context.Context, p *types.Principal) ([]*types.MaintenanceRequest, error)
	Create(ctx context.Context, p *types.Principal, req *CreateRequest) (*types.MaintenanceRequest, error)
	Update(ctx context.Context, p *types.Principal, id int64, req *UpdateRequest) (*types.MaintenanceRequest, error)
	Delete(ctx context.Context, p *types.Principal, id int64) error
}
