// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package billing -destination ./mock_interfaces.go -source=./interfaces.go

func newTestService(ctrl *gomock.Controller) (*Service, *MockStorageInterface) {
	mockStorage := NewMockStorageInterface(ctrl)
	s := NewService(mockStorage, 14*24*time.Hour, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	return s, mockStorage
}

func TestService_GetUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage := newTestService(ctrl)

	trialEnd := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	mockStorage.EXPECT().GetOrCreateSubscription(gomock.Any(), gomock.Any(), false).
		Return(&types.Subscription{OrgID: 2, PlanType: types.PlanFlat, Status: types.SubscriptionActive, TrialEndsAt: &trialEnd}, nil)
	mockStorage.EXPECT().CountActiveRecords(gomock.Any(), "units", int64(2)).Return(int64(12), nil)
	mockStorage.EXPECT().CountActiveRecords(gomock.Any(), "tenants", int64(2)).Return(int64(9), nil)

	usage, err := s.GetUsage(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := Usage{PlanType: types.PlanFlat, Status: types.SubscriptionActive, ActiveUnits: 12, ActiveTenants: 9, TrialEndsAt: &trialEnd}
	if *usage != expected {
		t.Errorf("expected %+v, got %+v", expected, usage)
	}
}

func TestService_GetSubscriptionCreatesTrial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage := newTestService(ctrl)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	mockStorage.EXPECT().GetOrCreateSubscription(gomock.Any(), gomock.Any(), false).DoAndReturn(
		func(_ context.Context, defaults *types.Subscription, _ bool) (*types.Subscription, error) {
			return defaults, nil
		},
	)

	sub, err := s.GetSubscription(context.Background(), 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sub.OrgID != 8 || sub.Status != types.SubscriptionTrialing || !sub.TrialEndsAt.Equal(now.Add(14*24*time.Hour)) {
		t.Errorf("unexpected subscription %+v", sub)
	}
}

func TestService_ChangePlan(t *testing.T) {
	tests := []struct {
		name        string
		plan        types.PlanType
		setupMocks  func(*MockStorageInterface)
		expectedErr error
	}{
		{
			name: "valid plan",
			plan: types.PlanPerTenant,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().GetOrCreateSubscription(gomock.Any(), gomock.Any(), false).Return(&types.Subscription{OrgID: 1}, nil)
				m.EXPECT().UpdateSubscriptionPlan(gomock.Any(), int64(1), types.PlanPerTenant).Return(&types.Subscription{OrgID: 1, PlanType: types.PlanPerTenant}, nil)
			},
		},
		{
			name:        "unknown plan",
			plan:        "enterprise",
			setupMocks:  func(*MockStorageInterface) {},
			expectedErr: types.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage := newTestService(ctrl)
			tt.setupMocks(mockStorage)

			sub, err := s.ChangePlan(context.Background(), 1, tt.plan)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if err == nil && sub.PlanType != tt.plan {
				t.Errorf("expected plan %s, got %s", tt.plan, sub.PlanType)
			}
		})
	}
}
