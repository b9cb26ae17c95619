package types

type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
}

type SchemaColumn struct {
	Name             string
	Type             string
	Nullable         bool
	IsPrimary        bool
	IsAutoIncrement  bool
	ForeignKeyTable  string
	ForeignKeyColumn string
}

// ForeignKeys returns the columns of t that reference another (or the same) table.
func (t SchemaTable) ForeignKeys() []SchemaColumn {
	var fks []SchemaColumn
	for _, col := range t.Columns {
		if col.ForeignKeyTable != "" && col.ForeignKeyColumn != "" {
			fks = append(fks, col)
		}
	}
	return fks
}

// PrimaryKey returns the name of the primary key column, or "" when there is none.
func (t SchemaTable) PrimaryKey() string {
	for _, col := range t.Columns {
		if col.IsPrimary {
			return col.Name
		}
	}
	return ""
}

// Column looks a column up by name.
func (t SchemaTable) Column(name string) (SchemaColumn, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return SchemaColumn{}, false
}
