package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/database/common"
	"github.com/Rana718/orgseed/internal/types"
)

func (p *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	for _, stmt := range common.ParseSQLStatements(p.GenerateCreateTableSQL(table)) {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to create table %s", table.Name)
		}
	}
	return nil
}

// DropTable drops tableName without IF EXISTS; a missing table is an error.
func (p *Adapter) DropTable(ctx context.Context, tableName string) error {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, "DROP TABLE "+pq.QuoteIdentifier(tableName)); err != nil {
		return errors.Wrapf(err, "failed to drop table %s", tableName)
	}
	return nil
}

func (p *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return 0, err
	}
	var count int
	query := "SELECT COUNT(*) FROM " + pq.QuoteIdentifier(tableName)
	if err := p.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "failed to count rows in table %s", tableName)
	}
	return count, nil
}

func (p *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("CREATE TABLE %s (", pq.QuoteIdentifier(table.Name)))

	for i, column := range table.Columns {
		comma := ","
		if i == len(table.Columns)-1 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  %s %s%s", pq.QuoteIdentifier(column.Name), p.FormatColumnType(column), comma))
	}

	lines = append(lines, ");")
	return strings.Join(lines, "\n")
}

func (p *Adapter) FormatColumnType(column types.SchemaColumn) string {
	var parts []string
	parts = append(parts, p.mapColumnType(column))

	if column.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
	}

	if !column.Nullable && !column.IsPrimary {
		parts = append(parts, "NOT NULL")
	}

	if column.ForeignKeyTable != "" && column.ForeignKeyColumn != "" {
		parts = append(parts, fmt.Sprintf("REFERENCES %s(%s)",
			pq.QuoteIdentifier(column.ForeignKeyTable), pq.QuoteIdentifier(column.ForeignKeyColumn)))
	}

	return strings.Join(parts, " ")
}

func (p *Adapter) mapColumnType(column types.SchemaColumn) string {
	if column.IsAutoIncrement {
		return "SERIAL"
	}
	return strings.ToUpper(column.Type)
}
