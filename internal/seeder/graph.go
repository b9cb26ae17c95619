package seeder

import (
	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/types"
)

// DependencyGraph orders tables so that every table comes after the tables its
// foreign keys reference. Self references do not constrain the order.
type DependencyGraph struct {
	tables map[string]types.SchemaTable
	names  []string
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]types.SchemaTable),
	}
}

func (g *DependencyGraph) AddTable(table types.SchemaTable) {
	if _, exists := g.tables[table.Name]; !exists {
		g.names = append(g.names, table.Name)
	}
	g.tables[table.Name] = table
	g.order = nil
}

// BuildCreationOrder returns the table names in creation order. Ties keep the
// order in which tables were added.
func (g *DependencyGraph) BuildCreationOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return errors.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		table, known := g.tables[tableName]
		if !known {
			return errors.Errorf("table references unknown table: %s", tableName)
		}

		temp[tableName] = true
		for _, fk := range table.ForeignKeys() {
			if fk.ForeignKeyTable == tableName {
				continue
			}
			if err := visit(fk.ForeignKeyTable); err != nil {
				return err
			}
		}
		temp[tableName] = false

		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, name := range g.names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

// BuildDropOrder is the creation order reversed.
func (g *DependencyGraph) BuildDropOrder() ([]string, error) {
	order, err := g.BuildCreationOrder()
	if err != nil {
		return nil, err
	}
	drop := make([]string, len(order))
	for i, name := range order {
		drop[len(order)-1-i] = name
	}
	return drop, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}

func (g *DependencyGraph) Table(name string) (types.SchemaTable, bool) {
	t, ok := g.tables[name]
	return t, ok
}
