// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantportal

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/storage"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package tenantportal -destination ./mock_interfaces.go -source=./interfaces.go

func TestService_Me(t *testing.T) {
	tenant := &types.Principal{UserID: "u1", OrgID: 3, Role: types.RoleTenant, Email: "jo@example.com"}

	tests := []struct {
		name           string
		principal      *types.Principal
		setupMocks     func(*MockStorageInterface)
		expectedLeases int
		expectedErr    error
	}{
		{
			name:      "profile with leases",
			principal: tenant,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().FindTenantByEmail(gomock.Any(), int64(3), "jo@example.com", tenantColumns).
					Return(types.Record{"id": int64(12), "first_name": "Jo"}, nil)
				m.EXPECT().FindRecords(gomock.Any(), "leases", leaseColumns, int64(3), map[string]any{"tenant_id": int64(12)}).
					Return([]types.Record{{"id": int64(2)}, {"id": int64(1)}}, nil)
			},
			expectedLeases: 2,
		},
		{
			name:      "profile without leases",
			principal: tenant,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().FindTenantByEmail(gomock.Any(), int64(3), "jo@example.com", tenantColumns).
					Return(types.Record{"id": int64(12)}, nil)
				m.EXPECT().FindRecords(gomock.Any(), "leases", leaseColumns, int64(3), gomock.Any()).
					Return([]types.Record{}, nil)
			},
		},
		{
			name:      "no tenant record",
			principal: tenant,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().FindTenantByEmail(gomock.Any(), int64(3), "jo@example.com", tenantColumns).Return(nil, storage.ErrNotFound)
			},
			expectedErr: types.ErrNotFound,
		},
		{
			name:        "principal without email",
			principal:   &types.Principal{UserID: "u2", OrgID: 3, Role: types.RoleTenant},
			setupMocks:  func(*MockStorageInterface) {},
			expectedErr: types.ErrNotFound,
		},
		{
			name:      "storage failure",
			principal: tenant,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().FindTenantByEmail(gomock.Any(), int64(3), "jo@example.com", tenantColumns).
					Return(types.Record{"id": int64(12)}, nil)
				m.EXPECT().FindRecords(gomock.Any(), "leases", leaseColumns, int64(3), gomock.Any()).
					Return(nil, errors.New("boom"))
			},
			expectedErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tt.setupMocks(mockStorage)

			s := NewService(mockStorage, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			profile, err := s.Me(context.Background(), tt.principal)
			if tt.expectedErr != nil {
				if err == nil || (!errors.Is(err, tt.expectedErr) && err.Error() != tt.expectedErr.Error()) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(profile.Leases) != tt.expectedLeases {
				t.Errorf("expected %d leases, got %d", tt.expectedLeases, len(profile.Leases))
			}
			if profile.Tenant["id"] != int64(12) {
				t.Errorf("unexpected tenant %v", profile.Tenant)
			}
		})
	}
}
