package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/orgseed/internal/schema"
	"github.com/Rana718/orgseed/internal/types"
)

func TestDependencyGraphOrder(t *testing.T) {
	tests := []struct {
		name   string
		tables []types.SchemaTable
	}{
		{name: "declaration order", tables: []types.SchemaTable{schema.Department, schema.Employee}},
		{name: "reverse order", tables: []types.SchemaTable{schema.Employee, schema.Department}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewDependencyGraph()
			for _, table := range tt.tables {
				g.AddTable(table)
			}

			order, err := g.BuildCreationOrder()
			require.NoError(t, err)
			assert.Equal(t, []string{"department", "employee"}, order)

			drop, err := g.BuildDropOrder()
			require.NoError(t, err)
			assert.Equal(t, []string{"employee", "department"}, drop)
		})
	}
}

func TestDependencyGraphRejectsCycles(t *testing.T) {
	a := types.SchemaTable{Name: "a", Columns: []types.SchemaColumn{
		{Name: "id", Type: "SERIAL", IsPrimary: true},
		{Name: "b_id", Type: "INTEGER", ForeignKeyTable: "b", ForeignKeyColumn: "id"},
	}}
	b := types.SchemaTable{Name: "b", Columns: []types.SchemaColumn{
		{Name: "id", Type: "SERIAL", IsPrimary: true},
		{Name: "a_id", Type: "INTEGER", ForeignKeyTable: "a", ForeignKeyColumn: "id"},
	}}

	g := NewDependencyGraph()
	g.AddTable(a)
	g.AddTable(b)

	_, err := g.BuildCreationOrder()
	assert.ErrorContains(t, err, "circular dependency")
}

func TestDependencyGraphRejectsUnknownTables(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(schema.Employee)

	_, err := g.BuildCreationOrder()
	assert.ErrorContains(t, err, "unknown table: department")
}
