// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/types"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{types.ErrNotAuthenticated, http.StatusUnauthorized},
		{types.ErrForbidden, http.StatusForbidden},
		{types.ErrPaymentRequired, http.StatusPaymentRequired},
		{types.ErrConflict, http.StatusConflict},
		{types.ErrNotFound, http.StatusNotFound},
		{types.ErrExpired, http.StatusGone},
		{types.ErrInvalid, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: password too short", types.ErrInvalid), http.StatusUnprocessableEntity},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := StatusFromError(tt.err); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "domain error keeps message",
			err:             fmt.Errorf("%w: unknown plan type", types.ErrInvalid),
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedMessage: "invalid input: unknown plan type",
		},
		{
			name:            "authentication details are hidden",
			err:             fmt.Errorf("%w: signature is invalid", types.ErrNotAuthenticated),
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "not authenticated",
		},
		{
			name:            "internal errors are hidden",
			err:             errors.New("connection refused"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			WriteError(rr, tt.err, logging.NewNoopLogger())

			if rr.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}

			if body.Status != tt.expectedStatus || body.Message != tt.expectedMessage {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}
