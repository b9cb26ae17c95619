package database

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Rana718/orgseed/internal/types"
)

// DatabaseAdapter is the persistence handle shared by the repositories and the
// seeder. Every statement is auto-committed before the call returns.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Statement building and execution
	StatementBuilder() squirrel.StatementBuilderType
	Exec(ctx context.Context, query squirrel.Sqlizer) error
	InsertReturningID(ctx context.Context, query squirrel.InsertBuilder, pkColumn string) (int64, error)

	// Schema operations
	CreateTable(ctx context.Context, table types.SchemaTable) error
	DropTable(ctx context.Context, tableName string) error
	GenerateCreateTableSQL(table types.SchemaTable) string
	GetTableRowCount(ctx context.Context, tableName string) (int, error)
}
