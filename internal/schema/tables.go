// Package schema holds the dialect-neutral definitions of the seeded tables.
// Adapters render them into their own CREATE TABLE statements.
package schema

import "github.com/Rana718/orgseed/internal/types"

const (
	DepartmentTable = "department"
	EmployeeTable   = "employee"

	// NameMaxLength is the width of every name column.
	NameMaxLength = 100
)

var Department = types.SchemaTable{
	Name: DepartmentTable,
	Columns: []types.SchemaColumn{
		{Name: "id", Type: "SERIAL", IsPrimary: true, IsAutoIncrement: true},
		{Name: "name", Type: "VARCHAR(100)"},
	},
}

var Employee = types.SchemaTable{
	Name: EmployeeTable,
	Columns: []types.SchemaColumn{
		{Name: "id", Type: "SERIAL", IsPrimary: true, IsAutoIncrement: true},
		{Name: "department_id", Type: "INTEGER", ForeignKeyTable: DepartmentTable, ForeignKeyColumn: "id"},
		{Name: "chief_id", Type: "INTEGER", Nullable: true, ForeignKeyTable: EmployeeTable, ForeignKeyColumn: "id"},
		{Name: "name", Type: "VARCHAR(100)"},
		{Name: "salary", Type: "INTEGER"},
	},
}

// Tables returns every seeded table in declaration order.
func Tables() []types.SchemaTable {
	return []types.SchemaTable{Department, Employee}
}
