// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package account -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package account -destination ./mock_authentication.go -source=../authentication/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package account -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage *MockStorageInterface
	tx      *MockTxInterface
	hasher  *MockPasswordHasherInterface
	tokens  *MockTokenServiceInterface
}

func newTestService(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		storage: NewMockStorageInterface(ctrl),
		tx:      NewMockTxInterface(ctrl),
		hasher:  NewMockPasswordHasherInterface(ctrl),
		tokens:  NewMockTokenServiceInterface(ctrl),
	}

	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()

	s := NewService(m.storage, m.tx, m.hasher, m.tokens, 14*24*time.Hour, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	return s, m
}

func TestService_Bootstrap(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMocks    func(*serviceMocks)
		expectedToken string
		expectedErr   error
	}{
		{
			name: "first run provisions organization, owner and trial",
			setupMocks: func(m *serviceMocks) {
				m.hasher.EXPECT().Hash("s3cretpass").Return("digest", nil)
				m.storage.EXPECT().CountUsers(gomock.Any()).Return(int64(0), nil)
				m.storage.EXPECT().CreateOrganization(gomock.Any(), "Acme Rentals").Return(&types.Organization{ID: 1, Name: "Acme Rentals"}, nil)
				m.storage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *types.User) (*types.User, error) {
						if u.OrgID != 1 || u.Role != types.RoleOwner || !u.IsActive || u.PasswordHash != "digest" {
							t.Errorf("unexpected owner %+v", u)
						}
						created := *u
						created.ID = "owner-1"
						return &created, nil
					},
				)
				m.storage.EXPECT().CreateSubscription(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, sub *types.Subscription) (*types.Subscription, error) {
						if sub.OrgID != 1 || sub.Status != types.SubscriptionTrialing || sub.PlanType != types.PlanPerUnit {
							t.Errorf("unexpected subscription %+v", sub)
						}
						if sub.TrialEndsAt == nil || !sub.TrialEndsAt.Equal(now.Add(14*24*time.Hour)) {
							t.Errorf("expected 14 day trial, got %v", sub.TrialEndsAt)
						}
						return sub, nil
					},
				)
				m.tokens.EXPECT().Issue("owner-1", int64(1), types.RoleOwner).Return("token", nil)
			},
			expectedToken: "token",
		},
		{
			name: "existing users conflict",
			setupMocks: func(m *serviceMocks) {
				m.hasher.EXPECT().Hash(gomock.Any()).Return("digest", nil)
				m.storage.EXPECT().CountUsers(gomock.Any()).Return(int64(1), nil)
			},
			expectedErr: types.ErrConflict,
		},
		{
			name: "password rejected by hasher",
			setupMocks: func(m *serviceMocks) {
				m.hasher.EXPECT().Hash(gomock.Any()).Return("", authentication.ErrPasswordTooLong)
			},
			expectedErr: types.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			s.now = func() time.Time { return now }
			tt.setupMocks(m)

			token, err := s.Bootstrap(context.Background(), "Acme Rentals", "owner@example.com", "s3cretpass")

			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if token != tt.expectedToken {
				t.Errorf("expected token %q, got %q", tt.expectedToken, token)
			}
		})
	}
}

func TestService_Login(t *testing.T) {
	inactive := &types.User{ID: "u-inactive", OrgID: 1, PasswordHash: "h1", Role: types.RoleTenant, IsActive: false}
	active := &types.User{ID: "u-active", OrgID: 2, PasswordHash: "h2", Role: types.RoleManager, IsActive: true}

	tests := []struct {
		name          string
		setupMocks    func(*serviceMocks)
		expectedToken string
		expectedErr   error
	}{
		{
			name: "unknown email",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().ListUsersByEmail(gomock.Any(), "someone@example.com").Return(nil, nil)
			},
			expectedErr: types.ErrNotAuthenticated,
		},
		{
			name: "inactive user with the right password",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().ListUsersByEmail(gomock.Any(), gomock.Any()).Return([]*types.User{inactive}, nil)
			},
			expectedErr: types.ErrNotAuthenticated,
		},
		{
			name: "wrong password",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().ListUsersByEmail(gomock.Any(), gomock.Any()).Return([]*types.User{active}, nil)
				m.hasher.EXPECT().Verify("pw", "h2").Return(false)
			},
			expectedErr: types.ErrNotAuthenticated,
		},
		{
			name: "active match among several organizations",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().ListUsersByEmail(gomock.Any(), gomock.Any()).Return([]*types.User{inactive, active}, nil)
				m.hasher.EXPECT().Verify("pw", "h2").Return(true)
				m.tokens.EXPECT().Issue("u-active", int64(2), types.RoleManager).Return("token", nil)
			},
			expectedToken: "token",
		},
		{
			name: "storage failure",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().ListUsersByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			expectedErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			tt.setupMocks(m)

			token, err := s.Login(context.Background(), "someone@example.com", "pw")

			switch {
			case tt.expectedErr == nil && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.expectedErr != nil && err == nil:
				t.Fatalf("expected error %v", tt.expectedErr)
			case tt.expectedErr == types.ErrNotAuthenticated && !errors.Is(err, types.ErrNotAuthenticated):
				t.Fatalf("expected not authenticated, got %v", err)
			}

			if token != tt.expectedToken {
				t.Errorf("expected token %q, got %q", tt.expectedToken, token)
			}
		})
	}
}

func TestService_LoginSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := NewMockTracingInterface(ctrl)
	mockStorage := NewMockStorageInterface(ctrl)

	ctx := context.Background()
	mockTracer.EXPECT().Start(gomock.Any(), "account.Service.Login").Return(ctx, trace.SpanFromContext(ctx))
	mockStorage.EXPECT().ListUsersByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)

	s := NewService(mockStorage, nil, nil, nil, time.Hour, mockTracer, monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	if _, err := s.Login(ctx, "x@example.com", "pw"); !errors.Is(err, types.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}
