// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "testing"

func TestPrincipalHasRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		expected bool
	}{
		{name: "exact match", role: "owner", allowed: []string{RoleOwner, RoleManager}, expected: true},
		{name: "case insensitive", role: "MANAGER", allowed: []string{RoleOwner, RoleManager}, expected: true},
		{name: "surrounding spaces", role: " Owner ", allowed: []string{RoleOwner}, expected: true},
		{name: "not in set", role: "tenant", allowed: []string{RoleOwner, RoleManager}, expected: false},
		{name: "empty set", role: "owner", allowed: nil, expected: false},
		{name: "empty role", role: "", allowed: []string{RoleOwner}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Principal{Role: tt.role}
			if got := p.HasRole(tt.allowed...); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestValidEnums(t *testing.T) {
	for _, s := range []SubscriptionStatus{SubscriptionTrialing, SubscriptionActive, SubscriptionPastDue, SubscriptionCanceled} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if SubscriptionStatus("paused").Valid() {
		t.Error("expected unknown status to be invalid")
	}

	for _, p := range []PlanType{PlanPerUnit, PlanPerTenant, PlanFlat} {
		if !p.Valid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if PlanType("enterprise").Valid() {
		t.Error("expected unknown plan to be invalid")
	}
}
