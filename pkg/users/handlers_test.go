// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

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
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/users",
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().ListUsers(gomock.Any(), owner).Return([]*types.User{{ID: "o1", PasswordHash: "secret"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/users",
			body:   `{"email":"s@example.com","password":"longenough","role":"staff"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().CreateUser(gomock.Any(), owner, "s@example.com", "longenough", "staff").Return(&types.User{ID: "s1"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "create duplicate",
			method: http.MethodPost,
			path:   "/users",
			body:   `{"email":"s@example.com","password":"longenough","role":"staff"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, types.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "deactivate",
			method: http.MethodPost,
			path:   "/users/u2/deactivate",
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().DeactivateUser(gomock.Any(), owner, "u2").Return(&types.User{ID: "u2"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "deactivate owner",
			method: http.MethodPost,
			path:   "/users/o1/deactivate",
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().DeactivateUser(gomock.Any(), owner, "o1").Return(nil, types.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
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
			body, _ := io.ReadAll(res.Body)

			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, body)
			}
			if bytes.Contains(body, []byte("secret")) {
				t.Errorf("password hash leaked: %s", body)
			}
		})
	}
}
