// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantportal

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Me resolves the tenant row linked to the principal's email and the leases
// written against it. Both lookups stay inside the principal's organization.
func (s *Service) Me(ctx context.Context, p *types.Principal) (*Profile, error) {
	ctx, span := s.tracer.Start(ctx, "tenantportal.Service.Me")
	defer span.End()

	if p.Email == "" {
		return nil, fmt.Errorf("%w: no tenant profile linked to this account", types.ErrNotFound)
	}

	tenant, err := s.storage.FindTenantByEmail(ctx, p.OrgID, p.Email, tenantColumns)
	if errors.Is(err, types.ErrNotFound) {
		s.logger.Debugf("user %s of org %d has no tenant record", p.UserID, p.OrgID)
		return nil, fmt.Errorf("%w: no tenant profile linked to this account", types.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	tenantID, err := recordID(tenant)
	if err != nil {
		return nil, err
	}

	leases, err := s.storage.FindRecords(ctx, "leases", leaseColumns, p.OrgID, map[string]any{"tenant_id": tenantID})
	if err != nil {
		return nil, err
	}

	return &Profile{Tenant: tenant, Leases: leases}, nil
}

func recordID(r types.Record) (int64, error) {
	switch v := r["id"].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected tenant id type %T", r["id"])
	}
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
