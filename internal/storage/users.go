// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/property-service/internal/types"
)

var userColumns = []string{
	"id", "org_id", "email", "password_hash", "role", "is_active", "created_at", "invite_token", "invite_expires_at",
}

type rowScanner interface {
	Scan(...any) error
}

func scanUser(row rowScanner) (*types.User, error) {
	var u types.User
	err := row.Scan(
		&u.ID, &u.OrgID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.InviteToken, &u.InviteExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountUsers")
	defer span.End()

	var count int64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("users").
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	created := *u
	created.ID = id.String()
	created.Email = strings.ToLower(strings.TrimSpace(u.Email))
	created.CreatedAt = s.now()

	_, err = s.db.Statement(ctx).
		Insert("users").
		Columns(userColumns...).
		Values(
			created.ID,
			created.OrgID,
			created.Email,
			created.PasswordHash,
			created.Role,
			created.IsActive,
			created.CreatedAt,
			created.InviteToken,
			created.InviteExpiresAt,
		).
		ExecContext(ctx)

	if err != nil {
		return nil, wrapConstraintError(err, "failed to insert user")
	}

	return &created, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetUserInOrg(ctx context.Context, orgID int64, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserInOrg")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"id": id, "org_id": orgID})
}

func (s *Storage) GetUserByEmailInOrg(ctx context.Context, orgID int64, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmailInOrg")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"org_id": orgID, "email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *Storage) GetUserByInviteToken(ctx context.Context, token string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByInviteToken")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"invite_token": token})
}

func (s *Storage) getUser(ctx context.Context, where sq.Eq) (*types.User, error) {
	row := s.db.Statement(ctx).
		Select(userColumns...).
		From("users").
		Where(where).
		QueryRowContext(ctx)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *Storage) ListUsersByEmail(ctx context.Context, email string) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUsersByEmail")
	defer span.End()

	return s.listUsers(ctx, sq.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *Storage) ListUsersByOrg(ctx context.Context, orgID int64) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUsersByOrg")
	defer span.End()

	return s.listUsers(ctx, sq.Eq{"org_id": orgID})
}

func (s *Storage) listUsers(ctx context.Context, where sq.Eq) ([]*types.User, error) {
	rows, err := s.db.Statement(ctx).
		Select(userColumns...).
		From("users").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*types.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

func (s *Storage) SetUserActive(ctx context.Context, orgID int64, id string, active bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetUserActive")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("users").
		Set("is_active", active).
		Where(sq.Eq{"id": id, "org_id": orgID}).
		ExecContext(ctx)

	return affectedOne(res, err, "failed to update user")
}

func (s *Storage) SetInvite(ctx context.Context, orgID int64, userID, token string, expiresAt time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetInvite")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("users").
		Set("invite_token", token).
		Set("invite_expires_at", expiresAt.UTC()).
		Where(sq.Eq{"id": userID, "org_id": orgID}).
		ExecContext(ctx)

	if err != nil {
		return wrapConstraintError(err, "failed to set invite")
	}

	return affectedOne(res, nil, "failed to set invite")
}

// ConsumeInvite activates the user and clears the invite in a single statement.
// It only matches while the token is still attached to the user, so a token
// can be redeemed once.
func (s *Storage) ConsumeInvite(ctx context.Context, userID, token, passwordHash string) error {
	ctx, span := s.tracer.Start(ctx, "storage.ConsumeInvite")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("users").
		Set("password_hash", passwordHash).
		Set("is_active", true).
		Set("invite_token", nil).
		Set("invite_expires_at", nil).
		Where(sq.Eq{"id": userID, "invite_token": token}).
		ExecContext(ctx)

	return affectedOne(res, err, "failed to consume invite")
}

func affectedOne(res sql.Result, err error, msg string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}
