// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/property-service/internal/db"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/migrations"
)

func newSQLiteStorage(t *testing.T) *Storage {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "storage.db") + "?_foreign_keys=on&_busy_timeout=5000"
	conn, err := sql.Open(db.DialectSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = migrations.Up(context.Background(), conn, db.DialectSQLite)
	require.NoError(t, err)

	client := db.NewDBClientFromDB(conn, db.DialectSQLite, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	return NewStorage(client, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	client := db.NewDBClientFromDB(conn, db.DialectPostgres, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	return NewStorage(client, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()), mock
}

func createUser(t *testing.T, s *Storage, orgID int64, email, role string) *types.User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), &types.User{
		OrgID:        orgID,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

func TestOrganizationsAndUsers(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	org, err := s.CreateOrganization(ctx, "Acme Rentals")
	require.NoError(t, err)
	assert.NotZero(t, org.ID)

	fetched, err := s.GetOrganization(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Rentals", fetched.Name)

	owner := createUser(t, s, org.ID, "  Owner@Example.com ", types.RoleOwner)
	assert.Equal(t, "owner@example.com", owner.Email)
	assert.Len(t, owner.ID, 36)

	got, err := s.GetUserByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.OrgID, got.OrgID)
	assert.Equal(t, types.RoleOwner, got.Role)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.InviteToken)
	assert.Nil(t, got.InviteExpiresAt)

	_, err = s.CreateUser(ctx, &types.User{OrgID: org.ID, Email: "owner@example.com", PasswordHash: "x", Role: types.RoleStaff})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	other, err := s.CreateOrganization(ctx, "Other")
	require.NoError(t, err)
	createUser(t, s, other.ID, "owner@example.com", types.RoleOwner)

	byEmail, err := s.ListUsersByEmail(ctx, "OWNER@example.com")
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	inOrg, err := s.GetUserByEmailInOrg(ctx, org.ID, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, inOrg.ID)

	_, err = s.GetUserInOrg(ctx, other.ID, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := s.ListUsersByOrg(ctx, org.ID)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, s.SetUserActive(ctx, org.ID, owner.ID, false))
	got, err = s.GetUserByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, s.SetUserActive(ctx, other.ID, owner.ID, true), ErrNotFound)

	count, err = s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInviteLifecycle(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()

	org, err := s.CreateOrganization(ctx, "Acme")
	require.NoError(t, err)

	u := createUser(t, s, org.ID, "tenant@example.com", types.RoleTenant)
	expires := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	require.NoError(t, s.SetInvite(ctx, org.ID, u.ID, "token-1", expires))
	// a new invite replaces the previous one
	require.NoError(t, s.SetInvite(ctx, org.ID, u.ID, "token-2", expires))

	_, err = s.GetUserByInviteToken(ctx, "token-1")
	assert.ErrorIs(t, err, ErrNotFound)

	invited, err := s.GetUserByInviteToken(ctx, "token-2")
	require.NoError(t, err)
	require.NotNil(t, invited.InviteExpiresAt)
	assert.True(t, invited.InviteExpiresAt.Equal(expires))

	require.NoError(t, s.ConsumeInvite(ctx, u.ID, "token-2", "new-hash"))
	assert.ErrorIs(t, s.ConsumeInvite(ctx, u.ID, "token-2", "other-hash"), ErrNotFound)

	accepted, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", accepted.PasswordHash)
	assert.True(t, accepted.IsActive)
	assert.Nil(t, accepted.InviteToken)
	assert.Nil(t, accepted.InviteExpiresAt)
}

func TestSubscriptions(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()

	org, err := s.CreateOrganization(ctx, "Acme")
	require.NoError(t, err)

	trialEnds := time.Now().Add(14 * 24 * time.Hour).UTC().Truncate(time.Second)
	defaults := &types.Subscription{OrgID: org.ID, PlanType: types.PlanPerUnit, Status: types.SubscriptionTrialing, TrialEndsAt: &trialEnds}

	first, err := s.GetOrCreateSubscription(ctx, defaults, true)
	require.NoError(t, err)
	assert.Equal(t, types.SubscriptionTrialing, first.Status)
	assert.Equal(t, types.PlanPerUnit, first.PlanType)
	require.NotNil(t, first.TrialEndsAt)

	second, err := s.GetOrCreateSubscription(ctx, defaults, false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = s.CreateSubscription(ctx, defaults)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	updated, err := s.UpdateSubscriptionPlan(ctx, org.ID, types.PlanFlat)
	require.NoError(t, err)
	assert.Equal(t, types.PlanFlat, updated.PlanType)

	customer := "cus_123"
	updated, err = s.UpdateSubscriptionStatus(ctx, org.ID, types.SubscriptionPastDue, &customer, nil)
	require.NoError(t, err)
	assert.Equal(t, types.SubscriptionPastDue, updated.Status)
	require.NotNil(t, updated.ExternalCustomerID)
	assert.Equal(t, customer, *updated.ExternalCustomerID)
	assert.Nil(t, updated.ExternalSubscriptionID)

	_, err = s.UpdateSubscriptionStatus(ctx, org.ID+100, types.SubscriptionActive, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

var propertyColumns = []string{"id", "org_id", "name", "city", "is_active", "created_at"}

func TestRecordsAreScopedByOrganization(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()

	orgA, err := s.CreateOrganization(ctx, "A")
	require.NoError(t, err)
	orgB, err := s.CreateOrganization(ctx, "B")
	require.NoError(t, err)

	created, err := s.CreateRecord(ctx, "properties", propertyColumns, orgA.ID, map[string]any{"name": "Elm Street", "city": "Springfield", "is_active": true})
	require.NoError(t, err)
	assert.Equal(t, "Elm Street", created["name"])
	assert.Equal(t, orgA.ID, created["org_id"])

	id, ok := created["id"].(int64)
	require.True(t, ok)

	_, err = s.GetRecord(ctx, "properties", propertyColumns, orgB.ID, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateRecord(ctx, "properties", propertyColumns, orgB.ID, id, map[string]any{"name": "Hijacked"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteRecord(ctx, "properties", orgB.ID, id), ErrNotFound)

	exists, err := s.RecordExists(ctx, "properties", orgB.ID, id)
	require.NoError(t, err)
	assert.False(t, exists)

	listB, err := s.ListRecords(ctx, "properties", propertyColumns, orgB.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, listB)

	updated, err := s.UpdateRecord(ctx, "properties", propertyColumns, orgA.ID, id, map[string]any{"name": "Oak Street"})
	require.NoError(t, err)
	assert.Equal(t, "Oak Street", updated["name"])

	listA, err := s.ListRecords(ctx, "properties", propertyColumns, orgA.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, listA, 1)

	count, err := s.CountActiveRecords(ctx, "properties", orgA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = s.CreateRecord(ctx, "units", []string{"id", "org_id", "property_id", "unit_number"}, orgA.ID, map[string]any{"property_id": id, "unit_number": "1A"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteRecord(ctx, "properties", orgA.ID, id), ErrForeignKeyViolation)
}

func TestTenantPortalLookups(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()

	orgA, err := s.CreateOrganization(ctx, "A")
	require.NoError(t, err)
	orgB, err := s.CreateOrganization(ctx, "B")
	require.NoError(t, err)

	tenantColumns := []string{"id", "first_name", "email"}
	newTenant := func(orgID int64, name, email string) int64 {
		r, err := s.CreateRecord(ctx, "tenants", tenantColumns, orgID, map[string]any{"first_name": name, "last_name": "X", "email": email})
		require.NoError(t, err)
		return r["id"].(int64)
	}

	jo := newTenant(orgA.ID, "Jo", "Jo@Example.com")
	newTenant(orgA.ID, "Jo again", "jo@example.com")
	newTenant(orgB.ID, "Other Jo", "jo@example.com")
	sam := newTenant(orgA.ID, "Sam", "sam@example.com")

	found, err := s.FindTenantByEmail(ctx, orgA.ID, " JO@example.COM ", tenantColumns)
	require.NoError(t, err)
	assert.Equal(t, jo, found["id"], "oldest match wins")

	_, err = s.FindTenantByEmail(ctx, orgB.ID, "sam@example.com", tenantColumns)
	assert.ErrorIs(t, err, ErrNotFound)

	property, err := s.CreateRecord(ctx, "properties", propertyColumns, orgA.ID, map[string]any{"name": "Elm"})
	require.NoError(t, err)
	unit, err := s.CreateRecord(ctx, "units", []string{"id"}, orgA.ID, map[string]any{"property_id": property["id"], "unit_number": "1A"})
	require.NoError(t, err)

	leaseColumns := []string{"id", "tenant_id", "monthly_rent"}
	for _, tenantID := range []int64{jo, jo, sam} {
		_, err := s.CreateRecord(ctx, "leases", leaseColumns, orgA.ID, map[string]any{"unit_id": unit["id"], "tenant_id": tenantID, "monthly_rent": 900.0})
		require.NoError(t, err)
	}

	leases, err := s.FindRecords(ctx, "leases", leaseColumns, orgA.ID, map[string]any{"tenant_id": jo})
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Greater(t, leases[0]["id"].(int64), leases[1]["id"].(int64))

	leases, err = s.FindRecords(ctx, "leases", leaseColumns, orgB.ID, map[string]any{"tenant_id": jo})
	require.NoError(t, err)
	assert.Empty(t, leases)
}

func TestMaintenanceRequests(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()

	org, err := s.CreateOrganization(ctx, "Acme")
	require.NoError(t, err)

	tenant := createUser(t, s, org.ID, "tenant@example.com", types.RoleTenant)

	mine, err := s.CreateMaintenanceRequest(ctx, &types.MaintenanceRequest{
		OrgID: org.ID, TenantUserID: &tenant.ID, Title: "Leaky tap", Priority: types.PriorityNormal, Status: types.MaintenanceOpen,
	})
	require.NoError(t, err)
	assert.Equal(t, "Leaky tap", mine.Title)

	_, err = s.CreateMaintenanceRequest(ctx, &types.MaintenanceRequest{
		OrgID: org.ID, Title: "Roof", Priority: types.PriorityHigh, Status: types.MaintenanceOpen,
	})
	require.NoError(t, err)

	all, err := s.ListMaintenanceRequests(ctx, org.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := s.ListMaintenanceRequests(ctx, org.ID, &tenant.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	mine.Status = types.MaintenanceResolved
	updated, err := s.UpdateMaintenanceRequest(ctx, mine)
	require.NoError(t, err)
	assert.Equal(t, types.MaintenanceResolved, updated.Status)

	_, err = s.GetMaintenanceRequest(ctx, org.ID+1, mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteMaintenanceRequest(ctx, org.ID, mine.ID))
	assert.ErrorIs(t, s.DeleteMaintenanceRequest(ctx, org.ID, mine.ID), ErrNotFound)
}

func TestGetUserByIDNotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetUserByID(context.Background(), "user-1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserMapsUniqueViolation(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgErrCodeUniqueViolation})

	_, err := s.CreateUser(context.Background(), &types.User{OrgID: 1, Email: "a@example.com", Role: types.RoleStaff})

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateSubscriptionLocksOnPostgres(t *testing.T) {
	s, mock := newMockStorage(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM subscriptions WHERE org_id = \$1 FOR SHARE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(subscriptionColumns))
	mock.ExpectExec(`INSERT INTO subscriptions .* ON CONFLICT \(org_id\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT .* FROM subscriptions WHERE org_id = \$1 FOR SHARE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(subscriptionColumns).AddRow(1, 7, "per_unit", "trialing", nil, nil, nil, now, now))

	sub, err := s.GetOrCreateSubscription(context.Background(), &types.Subscription{OrgID: 7, PlanType: types.PlanPerUnit, Status: types.SubscriptionTrialing}, true)

	require.NoError(t, err)
	assert.Equal(t, int64(7), sub.OrgID)
	assert.Equal(t, types.SubscriptionTrialing, sub.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorHelpers(t *testing.T) {
	dup := &pgconn.PgError{Code: pgErrCodeUniqueViolation}
	fk := &pgconn.PgError{Code: pgErrCodeForeignKeyViolation}
	other := errors.New("other")

	assert.True(t, IsDuplicateKeyError(dup))
	assert.False(t, IsDuplicateKeyError(other))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.ErrorIs(t, wrapConstraintError(dup, "ctx"), ErrDuplicateKey)
	assert.ErrorIs(t, wrapConstraintError(fk, "ctx"), ErrForeignKeyViolation)
	assert.ErrorIs(t, wrapConstraintError(other, "ctx"), other)
	assert.ErrorIs(t, wrapConstraintError(dup, "ctx"), types.ErrConflict)
}
