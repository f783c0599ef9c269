// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/property-service/internal/types"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectErr   bool
		errContains string
	}{
		{name: "valid", body: `{"email":"a@example.com","password":"secret"}`},
		{name: "malformed", body: `{"email":`, expectErr: true, errContains: "malformed"},
		{name: "unknown field", body: `{"email":"a@example.com","password":"x","role":"owner"}`, expectErr: true, errContains: "malformed"},
		{name: "bad email", body: `{"email":"nope","password":"x"}`, expectErr: true, errContains: "email failed on email"},
		{name: "missing password", body: `{"email":"a@example.com"}`, expectErr: true, errContains: "password failed on required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p loginPayload
			err := DecodeJSON(req, &p)

			if !tt.expectErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, types.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error to contain %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":12.50,"lease_id":3}`))

	obj, err := DecodeObject(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["lease_id"] != json.Number("3") {
		t.Errorf("expected json.Number 3, got %#v", obj["lease_id"])
	}

	_, err = DecodeObject(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[1,2]`)))
	if !errors.Is(err, types.ErrInvalid) {
		t.Errorf("expected ErrInvalid for a non object body, got %v", err)
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.value)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			got, err := PathID(req, "id")
			if tt.wantErr {
				if !errors.Is(err, types.ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("expected %d, got %d (%v)", tt.want, got, err)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&size=x", nil)

	if got := QueryInt(req, "page"); got != 3 {
		t.Errorf("expected page 3, got %d", got)
	}
	if got := QueryInt(req, "size"); got != 0 {
		t.Errorf("expected malformed size to be 0, got %d", got)
	}
}
