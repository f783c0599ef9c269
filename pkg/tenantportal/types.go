// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantportal

import "github.com/canonical/property-service/internal/types"

var (
	tenantColumns = []string{"id", "first_name", "last_name", "email", "phone", "is_active"}
	leaseColumns  = []string{"id", "unit_id", "monthly_rent", "start_date", "end_date", "is_active"}
)

// Profile is what a tenant sees about themselves.
type Profile struct {
	Tenant types.Record   `json:"tenant"`
	Leases []types.Record `json:"leases"`
}
