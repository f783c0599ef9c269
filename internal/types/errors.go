// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "errors"

// Errors surfaced to API callers. Services wrap them with context and the
// HTTP layer maps them to status codes.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrPaymentRequired  = errors.New("subscription inactive")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrExpired          = errors.New("expired")
	ErrInvalid          = errors.New("invalid input")
)
