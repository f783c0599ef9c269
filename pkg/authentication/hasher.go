// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/property-service/internal/types"
)

// MaxPasswordBytes is the bcrypt input limit. Longer passwords are rejected
// instead of being silently truncated.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = fmt.Errorf("%w: password must be at most %d bytes", types.ErrInvalid, MaxPasswordBytes)

var _ PasswordHasherInterface = (*PasswordHasher)(nil)

// PasswordHasher hashes passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(digest), nil
}

func (h *PasswordHasher) Verify(password, digest string) bool {
	if len(password) > MaxPasswordBytes || digest == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// NewPasswordHasher returns a hasher using the given bcrypt cost, values out
// of range fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &PasswordHasher{cost: cost}
}
