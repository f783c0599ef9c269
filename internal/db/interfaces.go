// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

// DBClientInterface is what storage and the transaction middleware need from
// the database.
type DBClientInterface interface {
	// Statement joins the request transaction when there is one.
	Statement(context.Context) sq.StatementBuilderType
	WithTx(context.Context, func(context.Context) error) error
	// Dialect reports the SQL dialect of the underlying database.
	Dialect() string
	Close()
}
