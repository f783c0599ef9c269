// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/property-service/internal/types"
)

var maintenanceColumns = []string{
	"id", "org_id", "unit_id", "tenant_user_id", "title", "description", "priority", "status", "created_at", "updated_at",
}

func scanMaintenanceRequest(row rowScanner) (*types.MaintenanceRequest, error) {
	var mr types.MaintenanceRequest
	err := row.Scan(
		&mr.ID, &mr.OrgID, &mr.UnitID, &mr.TenantUserID, &mr.Title, &mr.Description, &mr.Priority, &mr.Status, &mr.CreatedAt, &mr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mr, nil
}

// ListMaintenanceRequests lists the organization requests, newest first. A
// non-nil tenantUserID restricts the result to requests raised by that user.
func (s *Storage) ListMaintenanceRequests(ctx context.Context, orgID int64, tenantUserID *string) ([]*types.MaintenanceRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMaintenanceRequests")
	defer span.End()

	where := sq.Eq{"org_id": orgID}
	if tenantUserID != nil {
		where["tenant_user_id"] = *tenantUserID
	}

	rows, err := s.db.Statement(ctx).
		Select(maintenanceColumns...).
		From("maintenance_requests").
		Where(where).
		OrderBy("id DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*types.MaintenanceRequest, 0)
	for rows.Next() {
		mr, err := scanMaintenanceRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance request: %w", err)
		}
		requests = append(requests, mr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

func (s *Storage) GetMaintenanceRequest(ctx context.Context, orgID, id int64) (*types.MaintenanceRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMaintenanceRequest")
	defer span.End()

	return s.getMaintenanceRequest(ctx, orgID, id)
}

func (s *Storage) getMaintenanceRequest(ctx context.Context, orgID, id int64) (*types.MaintenanceRequest, error) {
	row := s.db.Statement(ctx).
		Select(maintenanceColumns...).
		From("maintenance_requests").
		Where(sq.Eq{"id": id, "org_id": orgID}).
		QueryRowContext(ctx)

	mr, err := scanMaintenanceRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get maintenance request: %w", err)
	}

	return mr, nil
}

func (s *Storage) CreateMaintenanceRequest(ctx context.Context, req *types.MaintenanceRequest) (*types.MaintenanceRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMaintenanceRequest")
	defer span.End()

	now := s.now()

	var id int64
	err := s.db.Statement(ctx).
		Insert("maintenance_requests").
		Columns("org_id", "unit_id", "tenant_user_id", "title", "description", "priority", "status", "created_at", "updated_at").
		Values(req.OrgID, req.UnitID, req.TenantUserID, req.Title, req.Description, req.Priority, req.Status, now, now).
		Suffix("RETURNING id").
		QueryRowContext(ctx).
		Scan(&id)

	if err != nil {
		return nil, fmt.Errorf("failed to insert maintenance request: %w", err)
	}

	return s.getMaintenanceRequest(ctx, req.OrgID, id)
}

func (s *Storage) UpdateMaintenanceRequest(ctx context.Context, req *types.MaintenanceRequest) (*types.MaintenanceRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMaintenanceRequest")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("maintenance_requests").
		Set("title", req.Title).
		Set("description", req.Description).
		Set("priority", req.Priority).
		Set("status", req.Status).
		Set("updated_at", s.now()).
		Where(sq.Eq{"id": req.ID, "org_id": req.OrgID}).
		ExecContext(ctx)

	if err := affectedOne(res, err, "failed to update maintenance request"); err != nil {
		return nil, err
	}

	return s.getMaintenanceRequest(ctx, req.OrgID, req.ID)
}

func (s *Storage) DeleteMaintenanceRequest(ctx context.Context, orgID, id int64) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteMaintenanceRequest")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("maintenance_requests").
		Where(sq.Eq{"id": id, "org_id": orgID}).
		ExecContext(ctx)

	return affectedOne(res, err, "failed to delete maintenance request")
}
