// Package repository persists models through a database adapter. Build and
// persist are separate steps: models are constructed transient and a
// repository Save assigns their identity.
package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
)

// Store is the subset of database.DatabaseAdapter the repositories need.
type Store interface {
	StatementBuilder() squirrel.StatementBuilderType
	Exec(ctx context.Context, query squirrel.Sqlizer) error
	InsertReturningID(ctx context.Context, query squirrel.InsertBuilder, pkColumn string) (int64, error)
}

const idColumn = "id"
