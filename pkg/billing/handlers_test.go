// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

func passthrough(next http.Handler) http.Handler { return next }

func TestAPI_Endpoints(t *testing.T) {
	owner := &types.Principal{UserID: "o1", OrgID: 7, Role: types.RoleOwner}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:   "subscription",
			method: http.MethodGet,
			path:   "/billing/subscription",
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().GetSubscription(gomock.Any(), int64(7)).Return(&types.Subscription{OrgID: 7, Status: types.SubscriptionTrialing}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "usage",
			method: http.MethodGet,
			path:   "/billing/usage",
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().GetUsage(gomock.Any(), int64(7)).Return(&Usage{ActiveUnits: 4}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "change plan",
			method: http.MethodPost,
			path:   "/billing/plan",
			body:   `{"plan_type":"flat"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().ChangePlan(gomock.Any(), int64(7), types.PlanFlat).Return(&types.Subscription{OrgID: 7, PlanType: types.PlanFlat}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "unknown plan",
			method: http.MethodPost,
			path:   "/billing/plan",
			body:   `{"plan_type":"gold"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().ChangePlan(gomock.Any(), int64(7), types.PlanType("gold")).Return(nil, types.ErrInvalid)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "missing plan",
			method:         http.MethodPost,
			path:           "/billing/plan",
			body:           `{}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockAuthz := NewMockAuthorizerInterface(ctrl)
			mockAuthz.EXPECT().RequireSubscription(gomock.Any()).Return(passthrough).AnyTimes()
			mockAuthz.EXPECT().RequireRoles(gomock.Any()).Return(passthrough).AnyTimes()
			tt.setupMocks(mockService)

			authenticate := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(authentication.WithPrincipal(r.Context(), owner)))
				})
			}

			mux := chi.NewMux()
			NewAPI(mockService, mockAuthz, authenticate, logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, body)
			}
		})
	}
}
