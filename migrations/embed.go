// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var EmbedMigrations embed.FS

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite3"
)

// NewProvider returns a goose provider reading the migration set of the given driver.
func NewProvider(db *sql.DB, driver string, opts ...goose.ProviderOption) (*goose.Provider, error) {
	var (
		dialect goose.Dialect
		dir     string
	)

	switch driver {
	case driverPostgres, "":
		dialect, dir = goose.DialectPostgres, "postgres"
	case driverSQLite:
		dialect, dir = goose.DialectSQLite3, "sqlite"
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", driver)
	}

	fsys, err := fs.Sub(EmbedMigrations, dir)
	if err != nil {
		return nil, err
	}

	return goose.NewProvider(dialect, db, fsys, opts...)
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string) ([]*goose.MigrationResult, error) {
	provider, err := NewProvider(db, driver, goose.WithLogger(goose.NopLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return provider.Up(ctx)
}
