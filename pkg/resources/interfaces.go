// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"net/http"

	"github.com/canonical/property-service/internal/authorization"
	"github.com/canonical/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the resources package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	ListRecords(ctx context.Context, table string, columns []string, orgID int64, page, size int64) ([]types.Record, error)
	GetRecord(ctx context.Context, table string, columns []string, orgID, id int64) (types.Record, error)
	CreateRecord(ctx context.Context, table string, columns []string, orgID int64, values map[string]any) (types.Record, error)
	UpdateRecord(ctx context.Context, table string, columns []string, orgID, id int64, values map[string]any) (types.Record, error)
	DeleteRecord(ctx context.Context, table string, orgID, id int64) error
	RecordExists(ctx context.Context, table string, orgID, id int64) (bool, error)
}

type AuthorizerInterface interface {
	RequireRoles(roles ...string) func(http.Handler) http.Handler
	RequireSubscription(level authorization.GateLevel) func(http.Handler) http.Handler
}

type ServiceInterface interface {
	List(ctx context.Context, orgID int64, res *Resource, page, size int64) ([]types.Record, error)
	Get(ctx context.Context, orgID int64, res *Resource, id int64) (types.Record, error)
	Create(ctx context.Context, orgID int64, res *Resource, payload map[string]any) (types.Record, error)
	Update(ctx context.Context, orgID int64, res *Resource, id int64, payload map[string]any) (types.Record, error)
	Delete(ctx context.Context, orgID int64, res *Resource, id int64) error
}
