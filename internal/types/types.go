// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleTenant  = "tenant"
)

// Roles lists every assignable user role.
var Roles = []string{RoleOwner, RoleManager, RoleStaff, RoleTenant}

type SubscriptionStatus string

const (
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionTrialing, SubscriptionActive, SubscriptionPastDue, SubscriptionCanceled:
		return true
	}
	return false
}

type PlanType string

const (
	PlanPerUnit   PlanType = "per_unit"
	PlanPerTenant PlanType = "per_tenant"
	PlanFlat      PlanType = "flat"
)

func (p PlanType) Valid() bool {
	switch p {
	case PlanPerUnit, PlanPerTenant, PlanFlat:
		return true
	}
	return false
}

type Organization struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type User struct {
	ID              string     `db:"id" json:"id"`
	OrgID           int64      `db:"org_id" json:"org_id"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	Role            string     `db:"role" json:"role"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	InviteToken     *string    `db:"invite_token" json:"-"`
	InviteExpiresAt *time.Time `db:"invite_expires_at" json:"-"`
}

type Subscription struct {
	ID                     int64              `db:"id" json:"id"`
	OrgID                  int64              `db:"org_id" json:"org_id"`
	PlanType               PlanType           `db:"plan_type" json:"plan_type"`
	Status                 SubscriptionStatus `db:"status" json:"status"`
	TrialEndsAt            *time.Time         `db:"trial_ends_at" json:"trial_ends_at,omitempty"`
	ExternalCustomerID     *string            `db:"external_customer_id" json:"external_customer_id,omitempty"`
	ExternalSubscriptionID *string            `db:"external_subscription_id" json:"external_subscription_id,omitempty"`
	CreatedAt              time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time          `db:"updated_at" json:"updated_at"`
}

// Principal is the identity resolved from a session token for the duration of a request.
type Principal struct {
	UserID string
	OrgID  int64
	Role   string
	Email  string
}

// HasRole reports whether the principal holds one of the given roles, ignoring case.
func (p *Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if strings.EqualFold(strings.TrimSpace(p.Role), r) {
			return true
		}
	}
	return false
}

// Record is an organization scoped row of a generic resource, keyed by column name.
type Record map[string]any

// MaintenanceRequest is a repair request raised against an organization.
type MaintenanceRequest struct {
	ID           int64     `db:"id" json:"id"`
	OrgID        int64     `db:"org_id" json:"org_id"`
	UnitID       *int64    `db:"unit_id" json:"unit_id"`
	TenantUserID *string   `db:"tenant_user_id" json:"tenant_user_id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description"`
	Priority     string    `db:"priority" json:"priority"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	MaintenanceOpen       = "open"
	MaintenanceInProgress = "in_progress"
	MaintenanceResolved   = "resolved"
	MaintenanceClosed     = "closed"
)

var (
	Priorities          = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
	MaintenanceStatuses = []string{MaintenanceOpen, MaintenanceInProgress, MaintenanceResolved, MaintenanceClosed}
)
