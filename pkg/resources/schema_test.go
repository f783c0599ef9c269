// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/canonical/property-service/internal/types"
)

func TestResource_Coerce(t *testing.T) {
	tests := []struct {
		name     string
		res      *Resource
		payload  map[string]any
		create   bool
		expected map[string]any
		wantErr  bool
	}{
		{
			name:     "lease create",
			res:      Leases,
			payload:  map[string]any{"unit_id": json.Number("4"), "monthly_rent": json.Number("1250.5"), "start_date": " 2026-01-01 "},
			create:   true,
			expected: map[string]any{"unit_id": int64(4), "monthly_rent": 1250.5, "start_date": "2026-01-01"},
		},
		{
			name:     "numeric strings are accepted",
			res:      Units,
			payload:  map[string]any{"property_id": "2", "unit_number": "1A", "bedrooms": "3"},
			create:   true,
			expected: map[string]any{"property_id": int64(2), "unit_number": "1A", "bedrooms": 3.0},
		},
		{
			name:     "null clears an optional field",
			res:      Tenants,
			payload:  map[string]any{"phone": nil, "is_active": "false"},
			expected: map[string]any{"phone": nil, "is_active": false},
		},
		{
			name:    "unknown key",
			res:     Properties,
			payload: map[string]any{"name": "Elm", "org_id": json.Number("2")},
			create:  true,
			wantErr: true,
		},
		{
			name:    "missing required on create",
			res:     Payments,
			payload: map[string]any{"lease_id": json.Number("1"), "amount": json.Number("10")},
			create:  true,
			wantErr: true,
		},
		{
			name:     "partial update skips required check",
			res:      Payments,
			payload:  map[string]any{"notes": "late"},
			expected: map[string]any{"notes": "late"},
		},
		{
			name:    "blank required string",
			res:     Properties,
			payload: map[string]any{"name": "  "},
			wantErr: true,
		},
		{
			name:    "null required field",
			res:     Leases,
			payload: map[string]any{"monthly_rent": nil},
			wantErr: true,
		},
		{
			name:    "fractional reference",
			res:     Payments,
			payload: map[string]any{"lease_id": json.Number("1.5")},
			wantErr: true,
		},
		{
			name:    "negative reference",
			res:     Payments,
			payload: map[string]any{"lease_id": json.Number("-1")},
			wantErr: true,
		},
		{
			name:    "wrong kind",
			res:     Tenants,
			payload: map[string]any{"first_name": json.Number("7")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.res.Coerce(tt.payload, tt.create)

			if tt.wantErr {
				if !errors.Is(err, types.ErrInvalid) {
					t.Fatalf("expected ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %#v, got %#v", tt.expected, got)
			}
		})
	}
}

func TestResource_Columns(t *testing.T) {
	cols := Payments.Columns()
	expected := []string{"id", "org_id", "lease_id", "amount", "payment_date", "method", "notes", "created_at"}

	if !reflect.DeepEqual(cols, expected) {
		t.Errorf("expected %v, got %v", expected, cols)
	}
}

func TestResource_References(t *testing.T) {
	refs := Leases.References(map[string]any{"unit_id": int64(3), "tenant_id": nil, "monthly_rent": 900.0})

	if !reflect.DeepEqual(refs, map[string]int64{"unit_id": 3}) {
		t.Errorf("unexpected references %v", refs)
	}
}
