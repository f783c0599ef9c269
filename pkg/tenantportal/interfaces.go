// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantportal

import (
	"context"
	"net/http"

	"github.com/canonical/property-service/internal/authorization"
	"github.com/canonical/property-service/internal/types"
)

// StorageInterface is the subset of internal/storage the portal reads from.
type StorageInterface interface {
	FindTenantByEmail(ctx context.Context, orgID int64, email string, columns []string) (types.Record, error)
	FindRecords(ctx context.Context, table string, columns []string, orgID int64, filter map[string]any) ([]types.Record, error)
}

type AuthorizerInterface interface {
	RequireRoles(roles ...string) func(http.Handler) http.Handler
	RequireSubscription(level authorization.GateLevel) func(http.Handler) http.Handler
}

type ServiceInterface interface {
	Me(ctx context.Context, p *types.Principal) (*Profile, error)
}
