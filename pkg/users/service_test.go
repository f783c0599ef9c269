// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/storage"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_authentication.go -source=../authentication/interfaces.go

var owner = &types.Principal{UserID: "o1", OrgID: 1, Role: types.RoleOwner}

func newTestService(ctrl *gomock.Controller) (*Service, *MockStorageInterface, *MockPasswordHasherInterface) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockHasher := NewMockPasswordHasherInterface(ctrl)

	s := NewService(mockStorage, mockHasher, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	return s, mockStorage, mockHasher
}

func TestService_CreateUser(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		setupMocks  func(*MockStorageInterface, *MockPasswordHasherInterface)
		expectedErr error
	}{
		{
			name: "staff account",
			role: "Staff",
			setupMocks: func(s *MockStorageInterface, h *MockPasswordHasherInterface) {
				h.EXPECT().Hash("longenough").Return("digest", nil)
				s.EXPECT().CreateUser(gomock.Any(), &types.User{OrgID: 1, Email: "s@example.com", PasswordHash: "digest", Role: types.RoleStaff, IsActive: true}).
					Return(&types.User{ID: "s1", OrgID: 1, Role: types.RoleStaff, IsActive: true}, nil)
			},
		},
		{
			name:        "unknown role",
			role:        "admin",
			setupMocks:  func(*MockStorageInterface, *MockPasswordHasherInterface) {},
			expectedErr: types.ErrInvalid,
		},
		{
			name: "duplicate email in organization",
			role: types.RoleManager,
			setupMocks: func(s *MockStorageInterface, h *MockPasswordHasherInterface) {
				h.EXPECT().Hash(gomock.Any()).Return("digest", nil)
				s.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("failed to insert user: %w", storage.ErrDuplicateKey))
			},
			expectedErr: types.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage, mockHasher := newTestService(ctrl)
			tt.setupMocks(mockStorage, mockHasher)

			user, err := s.CreateUser(context.Background(), owner, "s@example.com", "longenough", tt.role)

			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if tt.expectedErr == nil && user.ID != "s1" {
				t.Errorf("unexpected user %+v", user)
			}
		})
	}
}

func TestService_DeactivateUser(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*MockStorageInterface)
		expectedErr error
	}{
		{
			name: "member of the organization",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetUserInOrg(gomock.Any(), int64(1), "u2").Return(&types.User{ID: "u2", OrgID: 1, Role: types.RoleTenant, IsActive: true}, nil)
				s.EXPECT().SetUserActive(gomock.Any(), int64(1), "u2", false).Return(nil)
			},
		},
		{
			name: "user of another organization",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetUserInOrg(gomock.Any(), int64(1), "u2").Return(nil, storage.ErrNotFound)
			},
			expectedErr: types.ErrNotFound,
		},
		{
			name: "owner cannot be deactivated",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetUserInOrg(gomock.Any(), int64(1), "u2").Return(&types.User{ID: "u2", OrgID: 1, Role: "OWNER", IsActive: true}, nil)
			},
			expectedErr: types.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage, _ := newTestService(ctrl)
			tt.setupMocks(mockStorage)

			user, err := s.DeactivateUser(context.Background(), owner, "u2")

			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if err == nil && user.IsActive {
				t.Error("expected user to be inactive")
			}
		})
	}
}

func TestService_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage, _ := newTestService(ctrl)
	mockStorage.EXPECT().ListUsersByOrg(gomock.Any(), int64(1)).Return([]*types.User{{ID: "o1"}}, nil)

	users, err := s.ListUsers(context.Background(), owner)
	if err != nil || len(users) != 1 {
		t.Fatalf("unexpected result %v %v", users, err)
	}
}
