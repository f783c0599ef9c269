// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/canonical/property-service/internal/types"
)

type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindBool
	// KindRef is an id of a row in Field.Ref owned by the same organization.
	KindRef
)

type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
	Ref      string
}

// Resource is the static description of an organization scoped table.
// Only the fields listed here can be read or written through the API.
type Resource struct {
	Name   string
	Fields []Field
}

var (
	Properties = &Resource{
		Name: "properties",
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "address1", Kind: KindString},
			{Name: "address2", Kind: KindString},
			{Name: "city", Kind: KindString},
			{Name: "state", Kind: KindString},
			{Name: "zip", Kind: KindString},
			{Name: "notes", Kind: KindString},
			{Name: "is_active", Kind: KindBool},
		},
	}

	Units = &Resource{
		Name: "units",
		Fields: []Field{
			{Name: "property_id", Kind: KindRef, Required: true, Ref: "properties"},
			{Name: "unit_number", Kind: KindString, Required: true},
			{Name: "bedrooms", Kind: KindNumber},
			{Name: "bathrooms", Kind: KindNumber},
			{Name: "sq_ft", Kind: KindNumber},
			{Name: "notes", Kind: KindString},
			{Name: "is_active", Kind: KindBool},
		},
	}

	Tenants = &Resource{
		Name: "tenants",
		Fields: []Field{
			{Name: "first_name", Kind: KindString, Required: true},
			{Name: "last_name", Kind: KindString, Required: true},
			{Name: "email", Kind: KindString},
			{Name: "phone", Kind: KindString},
			{Name: "notes", Kind: KindString},
			{Name: "is_active", Kind: KindBool},
		},
	}

	Leases = &Resource{
		Name: "leases",
		Fields: []Field{
			{Name: "unit_id", Kind: KindRef, Required: true, Ref: "units"},
			{Name: "tenant_id", Kind: KindRef, Ref: "tenants"},
			{Name: "monthly_rent", Kind: KindNumber, Required: true},
			{Name: "start_date", Kind: KindString},
			{Name: "end_date", Kind: KindString},
			{Name: "security_deposit", Kind: KindNumber},
			{Name: "is_active", Kind: KindBool},
		},
	}

	Payments = &Resource{
		Name: "payments",
		Fields: []Field{
			{Name: "lease_id", Kind: KindRef, Required: true, Ref: "leases"},
			{Name: "amount", Kind: KindNumber, Required: true},
			{Name: "payment_date", Kind: KindString, Required: true},
			{Name: "method", Kind: KindString},
			{Name: "notes", Kind: KindString},
		},
	}
)

// All lists the resources served under /api.
var All = []*Resource{Properties, Units, Tenants, Leases, Payments}

// Columns returns the selectable columns in a stable order.
func (r *Resource) Columns() []string {
	cols := make([]string, 0, len(r.Fields)+3)
	cols = append(cols, "id", "org_id")
	for _, f := range r.Fields {
		cols = append(cols, f.Name)
	}
	return append(cols, "created_at")
}

func (r *Resource) field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Coerce maps a decoded JSON payload onto column values. Unknown keys and
// values that do not fit the field kind are rejected. With create set,
// every required field must be present.
func (r *Resource) Coerce(payload map[string]any, create bool) (map[string]any, error) {
	values := make(map[string]any, len(payload))

	for key, raw := range payload {
		f, ok := r.field(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q for %s", types.ErrInvalid, key, r.Name)
		}

		v, err := f.coerce(raw)
		if err != nil {
			return nil, err
		}
		if v == nil && f.Required {
			return nil, fmt.Errorf("%w: %s is required", types.ErrInvalid, f.Name)
		}

		values[f.Name] = v
	}

	if create {
		for _, f := range r.Fields {
			if _, ok := values[f.Name]; f.Required && !ok {
				return nil, fmt.Errorf("%w: %s is required", types.ErrInvalid, f.Name)
			}
		}
	}

	return values, nil
}

// References returns the referenced table and id of every reference field
// set in values.
func (r *Resource) References(values map[string]any) map[string]int64 {
	refs := make(map[string]int64)
	for _, f := range r.Fields {
		if f.Kind != KindRef {
			continue
		}
		if id, ok := values[f.Name].(int64); ok {
			refs[f.Name] = id
		}
	}
	return refs
}

func (f Field) coerce(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	invalid := fmt.Errorf("%w: %s has an invalid value", types.ErrInvalid, f.Name)

	switch f.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, invalid
		}
		s = strings.TrimSpace(s)
		if s == "" && f.Required {
			return nil, nil
		}
		return s, nil
	case KindNumber:
		n, err := number(raw)
		if err != nil {
			return nil, invalid
		}
		return n, nil
	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, invalid
			}
			return b, nil
		}
		return nil, invalid
	case KindRef:
		n, err := number(raw)
		if err != nil || n <= 0 || n != float64(int64(n)) {
			return nil, invalid
		}
		return int64(n), nil
	}

	return nil, invalid
}

func number(raw any) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		return v.Float64()
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("not a number: %T", raw)
}
