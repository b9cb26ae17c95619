package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/database/common"
	"github.com/Rana718/orgseed/internal/types"
)

func (s *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	for _, stmt := range common.ParseSQLStatements(s.GenerateCreateTableSQL(table)) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to create table %s", table.Name)
		}
	}
	return nil
}

func (s *Adapter) DropTable(ctx context.Context, tableName string) error {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE \"%s\"", tableName)); err != nil {
		return errors.Wrapf(err, "failed to drop table %s", tableName)
	}
	return nil
}

func (s *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return 0, err
	}
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM \"%s\"", tableName)
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "failed to count rows in table %s", tableName)
	}
	return count, nil
}

func (s *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	var lines []string
	var foreignKeys []string

	for _, column := range table.ForeignKeys() {
		foreignKeys = append(foreignKeys, fmt.Sprintf("  FOREIGN KEY (\"%s\") REFERENCES \"%s\"(\"%s\")",
			column.Name, column.ForeignKeyTable, column.ForeignKeyColumn))
	}

	lines = append(lines, fmt.Sprintf("CREATE TABLE \"%s\" (", table.Name))

	for i, column := range table.Columns {
		comma := ","
		if i == len(table.Columns)-1 && len(foreignKeys) == 0 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  \"%s\" %s%s", column.Name, s.FormatColumnType(column), comma))
	}

	for i, fk := range foreignKeys {
		comma := ","
		if i == len(foreignKeys)-1 {
			comma = ""
		}
		lines = append(lines, fk+comma)
	}

	lines = append(lines, ");")
	return strings.Join(lines, "\n")
}

func (s *Adapter) FormatColumnType(column types.SchemaColumn) string {
	parts := []string{s.mapColumnType(column.Type)}

	if column.IsPrimary {
		if column.IsAutoIncrement {
			parts = append(parts, "PRIMARY KEY AUTOINCREMENT")
		} else {
			parts = append(parts, "PRIMARY KEY")
		}
	}

	if !column.Nullable && !column.IsPrimary {
		parts = append(parts, "NOT NULL")
	}

	return strings.Join(parts, " ")
}

var typeMap = map[string]string{
	"serial": "INTEGER", "int": "INTEGER", "integer": "INTEGER", "bigint": "INTEGER",
	"varchar": "TEXT", "text": "TEXT", "char": "TEXT",
}

func (s *Adapter) mapColumnType(dbType string) string {
	base := strings.ToLower(dbType)
	if idx := strings.Index(base, "("); idx > 0 {
		base = base[:idx]
	}
	if mapped, ok := typeMap[base]; ok {
		return mapped
	}
	return strings.ToUpper(dbType)
}
