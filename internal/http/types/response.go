// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/types"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// OKResponse is returned by operations without a payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{types.ErrNotAuthenticated, http.StatusUnauthorized},
	{types.ErrForbidden, http.StatusForbidden},
	{types.ErrPaymentRequired, http.StatusPaymentRequired},
	{types.ErrConflict, http.StatusConflict},
	{types.ErrNotFound, http.StatusNotFound},
	{types.ErrExpired, http.StatusGone},
	{types.ErrInvalid, http.StatusUnprocessableEntity},
}

// StatusFromError maps domain errors onto HTTP status codes, anything unknown is a 500.
func StatusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any, logger logging.LoggerInterface) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

// WriteError writes err as an ErrorResponse. Internal errors are logged and
// replaced by a generic message.
func WriteError(w http.ResponseWriter, err error, logger logging.LoggerInterface) {
	status := StatusFromError(err)

	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		logger.Errorf("request failed: %v", err)
		message = http.StatusText(status)
	case http.StatusUnauthorized:
		message = types.ErrNotAuthenticated.Error()
	}

	WriteJSON(w, status, ErrorResponse{Status: status, Message: message}, logger)
}
