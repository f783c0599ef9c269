// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package account

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

func passthrough(next http.Handler) http.Handler { return next }

func noLimit(string) func(http.Handler) http.Handler { return passthrough }

func withPrincipal(p *types.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(authentication.WithPrincipal(r.Context(), p)))
		})
	}
}

func TestAPI_Endpoints(t *testing.T) {
	principal := &types.Principal{UserID: "u1", OrgID: 4, Role: types.RoleOwner, Email: "owner@example.com"}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectCookie   bool
		validate       func(*testing.T, []byte)
	}{
		{
			name:   "bootstrap",
			method: http.MethodPost,
			path:   "/auth/bootstrap",
			body:   `{"org_name":"Acme","email":"owner@example.com","password":"longenough"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().Bootstrap(gomock.Any(), "Acme", "owner@example.com", "longenough").Return("tok", nil)
			},
			expectedStatus: http.StatusOK,
			expectCookie:   true,
			validate: func(t *testing.T, body []byte) {
				var resp TokenResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.AccessToken != "tok" || resp.TokenType != "bearer" {
					t.Errorf("unexpected response %+v", resp)
				}
			},
		},
		{
			name:   "bootstrap twice",
			method: http.MethodPost,
			path:   "/auth/bootstrap",
			body:   `{"org_name":"Acme","email":"owner@example.com","password":"longenough"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().Bootstrap(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", types.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bootstrap with short password",
			method:         http.MethodPost,
			path:           "/auth/bootstrap",
			body:           `{"org_name":"Acme","email":"owner@example.com","password":"short"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "bootstrap with unknown field",
			method:         http.MethodPost,
			path:           "/auth/bootstrap",
			body:           `{"org_name":"Acme","email":"owner@example.com","password":"longenough","role":"owner"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "login",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"owner@example.com","password":"longenough"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().Login(gomock.Any(), "owner@example.com", "longenough").Return("tok", nil)
			},
			expectedStatus: http.StatusOK,
			expectCookie:   true,
		},
		{
			name:   "login failure is uniform",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"owner@example.com","password":"nope"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return("", types.ErrNotAuthenticated)
			},
			expectedStatus: http.StatusUnauthorized,
			validate: func(t *testing.T, body []byte) {
				if !bytes.Contains(body, []byte(`"message":"not authenticated"`)) {
					t.Errorf("unexpected body %s", body)
				}
			},
		},
		{
			name:   "login internal error",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"owner@example.com","password":"x"}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, body []byte) {
				if bytes.Contains(body, []byte("db down")) {
					t.Errorf("internal error leaked: %s", body)
				}
			},
		},
		{
			name:           "logout",
			method:         http.MethodPost,
			path:           "/auth/logout",
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusOK,
			expectCookie:   true,
		},
		{
			name:           "me",
			method:         http.MethodGet,
			path:           "/auth/me",
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body []byte) {
				var resp MeResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.ID != "u1" || resp.OrgID != 4 || resp.Role != types.RoleOwner || resp.Email != "owner@example.com" {
					t.Errorf("unexpected response %+v", resp)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			cookie := authentication.NewSessionCookie("hr_token", 30*24*time.Hour, false)
			api := NewAPI(mockService, cookie, withPrincipal(principal), noLimit, logging.NewNoopLogger())

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			body, _ := io.ReadAll(res.Body)

			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, body)
			}

			hasCookie := false
			for _, c := range res.Cookies() {
				if c.Name == "hr_token" {
					hasCookie = true
				}
			}
			if hasCookie != tt.expectCookie {
				t.Errorf("expected cookie %v, got %v", tt.expectCookie, hasCookie)
			}

			if tt.validate != nil {
				tt.validate(t, body)
			}
		})
	}
}
