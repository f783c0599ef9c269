// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package maintenance

import (
	"context"
	"fmt"
	"slices"
	"strings"

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

func isTenant(p *types.Principal) bool {
	return p.HasRole(types.RoleTenant)
}

// List returns the organization requests. Tenants only see their own.
func (s *Service) List(ctx context.Context, p *types.Principal) ([]*types.MaintenanceRequest, error) {
	ctx, span := s.tracer.Start(ctx, "maintenance.Service.List")
	defer span.End()

	var owner *string
	if isTenant(p) {
		owner = &p.UserID
	}

	return s.storage.ListMaintenanceRequests(ctx, p.OrgID, owner)
}

func (s *Service) Create(ctx context.Context, p *types.Principal, req *CreateRequest) (*types.MaintenanceRequest, error) {
	ctx, span := s.tracer.Start(ctx, "maintenance.Service.Create")
	defer span.End()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", types.ErrInvalid)
	}

	priority := strings.ToLower(strings.TrimSpace(req.Priority))
	if !slices.Contains(types.Priorities, priority) {
		priority = types.PriorityNormal
	}

	if req.UnitID != nil {
		ok, err := s.storage.RecordExists(ctx, "units", p.OrgID, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: unit_id does not reference an existing unit", types.ErrInvalid)
		}
	}

	mr := &types.MaintenanceRequest{
		OrgID:       p.OrgID,
		UnitID:      req.UnitID,
		Title:       title,
		Description: req.Description,
		Priority:    priority,
		Status:      types.MaintenanceOpen,
	}
	if isTenant(p) {
		mr.TenantUserID = &p.UserID
	}

	return s.storage.CreateMaintenanceRequest(ctx, mr)
}

func (s *Service) Update(ctx context.Context, p *types.Principal, id int64, req *UpdateRequest) (*types.MaintenanceRequest, error) {
	ctx, span := s.tracer.Start(ctx, "maintenance.Service.Update")
	defer span.End()

	mr, err := s.owned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", types.ErrInvalid)
		}
		mr.Title = title
	}
	if req.Description != nil {
		mr.Description = req.Description
	}

	if isTenant(p) {
		if req.Priority != nil || req.Status != nil {
			s.logger.Security().AuthzFailure(p.UserID, "maintenance:triage")
			return nil, fmt.Errorf("%w: tenants may only change title and description", types.ErrForbidden)
		}
		return s.storage.UpdateMaintenanceRequest(ctx, mr)
	}

	if req.Priority != nil {
		priority := strings.ToLower(strings.TrimSpace(*req.Priority))
		if !slices.Contains(types.Priorities, priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", types.ErrInvalid, *req.Priority)
		}
		mr.Priority = priority
	}
	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if !slices.Contains(types.MaintenanceStatuses, status) {
			return nil, fmt.Errorf("%w: unknown status %q", types.ErrInvalid, *req.Status)
		}
		mr.Status = status
	}

	return s.storage.UpdateMaintenanceRequest(ctx, mr)
}

func (s *Service) Delete(ctx context.Context, p *types.Principal, id int64) error {
	ctx, span := s.tracer.Start(ctx, "maintenance.Service.Delete")
	defer span.End()

	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}

	return s.storage.DeleteMaintenanceRequest(ctx, p.OrgID, id)
}

// owned loads a request of the caller's organization. Tenants may only
// touch the requests they raised.
func (s *Service) owned(ctx context.Context, p *types.Principal, id int64) (*types.MaintenanceRequest, error) {
	mr, err := s.storage.GetMaintenanceRequest(ctx, p.OrgID, id)
	if err != nil {
		return nil, err
	}

	if isTenant(p) && (mr.TenantUserID == nil || *mr.TenantUserID != p.UserID) {
		s.logger.Security().AuthzFailure(p.UserID, fmt.Sprintf("maintenance:%d", id))
		return nil, fmt.Errorf("%w: request belongs to another user", types.ErrForbidden)
	}

	return mr, nil
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
