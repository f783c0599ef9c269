// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/property-service/internal/db"
	"github.com/canonical/property-service/internal/types"
)

// Generic organization scoped rows. Table and column names are never taken
// from request input: callers pass identifiers from their own static schema.

func (s *Storage) ListRecords(ctx context.Context, table string, columns []string, orgID int64, page, size int64) ([]types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListRecords")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := s.db.Statement(ctx).
		Select(columns...).
		From(table).
		Where(sq.Eq{"org_id": orgID}).
		OrderBy("id DESC").
		Limit(pageSize).
		Offset(db.Offset(page, pageSize)).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	records := make([]types.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows, columns)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// FindRecords returns every row of the organization matching filter, newest first.
func (s *Storage) FindRecords(ctx context.Context, table string, columns []string, orgID int64, filter map[string]any) ([]types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "storage.FindRecords")
	defer span.End()

	where := sq.Eq{"org_id": orgID}
	for k, v := range filter {
		where[k] = v
	}

	rows, err := s.db.Statement(ctx).
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("id DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", table, err)
	}
	defer rows.Close()

	records := make([]types.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows, columns)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// FindTenantByEmail returns the oldest tenant row of the organization whose
// email matches, ignoring case.
func (s *Storage) FindTenantByEmail(ctx context.Context, orgID int64, email string, columns []string) (types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "storage.FindTenantByEmail")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(columns...).
		From("tenants").
		Where(sq.Eq{"org_id": orgID}).
		Where(sq.Expr("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))).
		OrderBy("id").
		Limit(1).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find tenant: %w", err)
		}
		return nil, ErrNotFound
	}

	r, err := scanRecord(rows, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan tenants: %w", err)
	}

	return r, nil
}

func (s *Storage) GetRecord(ctx context.Context, table string, columns []string, orgID, id int64) (types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetRecord")
	defer span.End()

	return s.getRecord(ctx, table, columns, orgID, id)
}

func (s *Storage) getRecord(ctx context.Context, table string, columns []string, orgID, id int64) (types.Record, error) {
	rows, err := s.db.Statement(ctx).
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id, "org_id": orgID}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", table, err)
		}
		return nil, ErrNotFound
	}

	r, err := scanRecord(rows, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", table, err)
	}

	return r, nil
}

func (s *Storage) CreateRecord(ctx context.Context, table string, columns []string, orgID int64, values map[string]any) (types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateRecord")
	defer span.End()

	insert := sq.Eq{"org_id": orgID, "created_at": s.now()}
	for k, v := range values {
		insert[k] = v
	}

	var id int64
	err := s.db.Statement(ctx).
		Insert(table).
		SetMap(insert).
		Suffix("RETURNING id").
		QueryRowContext(ctx).
		Scan(&id)

	if err != nil {
		return nil, wrapConstraintError(err, fmt.Sprintf("failed to insert into %s", table))
	}

	return s.getRecord(ctx, table, columns, orgID, id)
}

func (s *Storage) UpdateRecord(ctx context.Context, table string, columns []string, orgID, id int64, values map[string]any) (types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateRecord")
	defer span.End()

	if len(values) > 0 {
		res, err := s.db.Statement(ctx).
			Update(table).
			SetMap(values).
			Where(sq.Eq{"id": id, "org_id": orgID}).
			ExecContext(ctx)

		if err != nil {
			return nil, wrapConstraintError(err, fmt.Sprintf("failed to update %s", table))
		}
		if err := affectedOne(res, nil, fmt.Sprintf("failed to update %s", table)); err != nil {
			return nil, err
		}
	}

	return s.getRecord(ctx, table, columns, orgID, id)
}

func (s *Storage) DeleteRecord(ctx context.Context, table string, orgID, id int64) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteRecord")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete(table).
		Where(sq.Eq{"id": id, "org_id": orgID}).
		ExecContext(ctx)

	if err != nil {
		return wrapConstraintError(err, fmt.Sprintf("failed to delete from %s", table))
	}

	return affectedOne(res, nil, fmt.Sprintf("failed to delete from %s", table))
}

func (s *Storage) RecordExists(ctx context.Context, table string, orgID, id int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RecordExists")
	defer span.End()

	var found int64
	err := s.db.Statement(ctx).
		Select("id").
		From(table).
		Where(sq.Eq{"id": id, "org_id": orgID}).
		QueryRowContext(ctx).
		Scan(&found)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}

	return true, nil
}

func (s *Storage) CountActiveRecords(ctx context.Context, table string, orgID int64) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountActiveRecords")
	defer span.End()

	var count int64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"org_id": orgID, "is_active": true}).
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

func scanRecord(rows *sql.Rows, columns []string) (types.Record, error) {
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	r := make(types.Record, len(columns))
	for i, c := range columns {
		// text columns come back as []byte from some drivers
		if b, ok := values[i].([]byte); ok {
			r[c] = string(b)
			continue
		}
		r[c] = values[i]
	}

	return r, nil
}
