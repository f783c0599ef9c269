// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/canonical/property-service/internal/types"
)

// Sentinel errors for storage operations. They wrap the API level errors so
// callers can hand them straight to the HTTP layer.
var (
	ErrNotFound            = fmt.Errorf("resource %w", types.ErrNotFound)
	ErrDuplicateKey        = fmt.Errorf("duplicate key violation: %w", types.ErrConflict)
	ErrForeignKeyViolation = fmt.Errorf("foreign key violation: %w", types.ErrConflict)
)

// PostgreSQL error codes
const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// IsDuplicateKeyError checks if the error is a unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// IsForeignKeyViolation checks if the error is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeForeignKeyViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	return false
}

// wrapConstraintError maps driver constraint errors onto the storage sentinels.
func wrapConstraintError(err error, context string) error {
	switch {
	case IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", context, ErrDuplicateKey)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", context, ErrForeignKeyViolation)
	}
	return fmt.Errorf("%s: %w", context, err)
}
