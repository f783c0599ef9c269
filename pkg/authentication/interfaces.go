// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/property-service/internal/types"
)

type PasswordHasherInterface interface {
	// Hash returns a salted one-way digest of the password
	Hash(password string) (string, error)
	// Verify reports whether password matches digest, malformed digests never match
	Verify(password, digest string) bool
}

type TokenServiceInterface interface {
	// Issue signs a session token for the user
	Issue(userID string, orgID int64, role string) (string, error)
	// Decode verifies a raw session token, returning ErrInvalidToken on any failure
	Decode(rawToken string) (*Claims, error)
}

// UserStorageInterface is the subset of the storage used to resolve identities.
type UserStorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
}
