package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/database/common"
	"github.com/Rana718/orgseed/internal/types"
)

func (m *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	for _, stmt := range common.ParseSQLStatements(m.GenerateCreateTableSQL(table)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to create table %s", table.Name)
		}
	}
	return nil
}

func (m *Adapter) DropTable(ctx context.Context, tableName string) error {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return err
	}
	if _, err := m.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE `%s`", tableName)); err != nil {
		return errors.Wrapf(err, "failed to drop table %s", tableName)
	}
	return nil
}

func (m *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return 0, err
	}
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM `%s`", tableName)
	if err := m.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "failed to count rows in table %s", tableName)
	}
	return count, nil
}

func (m *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	var lines []string
	var foreignKeys []string

	for _, column := range table.ForeignKeys() {
		foreignKeys = append(foreignKeys, fmt.Sprintf("  FOREIGN KEY (`%s`) REFERENCES `%s`(`%s`)",
			column.Name, column.ForeignKeyTable, column.ForeignKeyColumn))
	}

	lines = append(lines, fmt.Sprintf("CREATE TABLE `%s` (", table.Name))

	for i, column := range table.Columns {
		comma := ","
		if i == len(table.Columns)-1 && len(foreignKeys) == 0 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  `%s` %s%s", column.Name, m.FormatColumnType(column), comma))
	}

	for i, fk := range foreignKeys {
		comma := ","
		if i == len(foreignKeys)-1 {
			comma = ""
		}
		lines = append(lines, fk+comma)
	}

	lines = append(lines, ") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;")
	return strings.Join(lines, "\n")
}

func (m *Adapter) FormatColumnType(column types.SchemaColumn) string {
	var parts []string
	columnType := m.convertTypeToMySQL(column.Type)
	parts = append(parts, columnType)

	if column.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
		if column.IsAutoIncrement {
			parts = append(parts, "AUTO_INCREMENT")
		}
	}

	if !column.Nullable && !column.IsPrimary {
		parts = append(parts, "NOT NULL")
	}

	return strings.Join(parts, " ")
}

func (m *Adapter) convertTypeToMySQL(pgType string) string {
	upperType := strings.ToUpper(pgType)

	switch upperType {
	case "SERIAL", "INTEGER":
		return "INT"
	case "BIGSERIAL":
		return "BIGINT"
	}

	return upperType
}
