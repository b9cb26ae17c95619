// Package memory implements the database adapter on process memory. It
// understands exactly the statements the repositories build: single-row
// INSERTs and UPDATEs keyed by primary key. NOT NULL and foreign key
// constraints are enforced the way a relational store would.
package memory

import (
	"context"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/database/common"
	"github.com/Rana718/orgseed/internal/types"
)

var (
	insertRegex = regexp.MustCompile(`^INSERT INTO (\w+) \(([^)]*)\) VALUES \(([^)]*)\)$`)
	updateRegex = regexp.MustCompile(`^UPDATE (\w+) SET (.+) WHERE (\w+) = \?$`)
	assignRegex = regexp.MustCompile(`^(\w+) = \?$`)
)

type Row map[string]interface{}

// Stats counts the statements that reached the store.
type Stats struct {
	Inserts int
	Updates int
	Creates int
	Drops   int
}

func (s Stats) Total() int {
	return s.Inserts + s.Updates + s.Creates + s.Drops
}

type table struct {
	def    types.SchemaTable
	rows   map[int64]Row
	nextID int64
}

type Adapter struct {
	mu     sync.Mutex
	tables map[string]*table
	qb     squirrel.StatementBuilderType
	stats  Stats
}

func New() *Adapter {
	return &Adapter{
		tables: make(map[string]*table),
		qb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (a *Adapter) Connect(ctx context.Context, url string) error {
	return nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	return nil
}

func (a *Adapter) StatementBuilder() squirrel.StatementBuilderType {
	return a.qb
}

func (a *Adapter) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

func (a *Adapter) Exec(ctx context.Context, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build statement")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case strings.HasPrefix(sql, "UPDATE "):
		return a.update(sql, args)
	case strings.HasPrefix(sql, "INSERT "):
		_, err := a.insert(sql, args)
		return err
	default:
		return errors.Errorf("memory store: unsupported statement %q", sql)
	}
}

func (a *Adapter) InsertReturningID(ctx context.Context, query squirrel.InsertBuilder, pkColumn string) (int64, error) {
	if err := common.ValidateIdentifier(pkColumn); err != nil {
		return 0, err
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "failed to build insert")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.insert(sql, args)
}

func (a *Adapter) insert(sql string, args []interface{}) (int64, error) {
	m := insertRegex.FindStringSubmatch(sql)
	if m == nil {
		return 0, errors.Errorf("memory store: unsupported insert %q", sql)
	}

	t, err := a.table(m[1])
	if err != nil {
		return 0, err
	}

	columns := splitList(m[2])
	if len(columns) != len(args) {
		return 0, errors.Errorf("memory store: %d columns but %d values in %q", len(columns), len(args), sql)
	}

	row := make(Row, len(t.def.Columns))
	for i, col := range columns {
		row[col] = normalize(args[i])
	}

	pk := t.def.PrimaryKey()
	id := t.nextID + 1
	row[pk] = id

	if err := a.validate(t, row); err != nil {
		return 0, err
	}

	t.nextID = id
	t.rows[id] = row
	a.stats.Inserts++
	return id, nil
}

func (a *Adapter) update(sql string, args []interface{}) error {
	m := updateRegex.FindStringSubmatch(sql)
	if m == nil {
		return errors.Errorf("memory store: unsupported update %q", sql)
	}

	t, err := a.table(m[1])
	if err != nil {
		return err
	}
	if m[3] != t.def.PrimaryKey() {
		return errors.Errorf("memory store: updates must be keyed by %s", t.def.PrimaryKey())
	}

	assignments := splitList(m[2])
	if len(assignments)+1 != len(args) {
		return errors.Errorf("memory store: %d assignments but %d arguments in %q", len(assignments), len(args), sql)
	}

	id, ok := normalize(args[len(args)-1]).(int64)
	if !ok {
		return errors.Errorf("memory store: non-integer key %v", args[len(args)-1])
	}
	current, ok := t.rows[id]
	if !ok {
		// Matches SQL semantics: an UPDATE that hits no row is not an error.
		a.stats.Updates++
		return nil
	}

	row := make(Row, len(current))
	for k, v := range current {
		row[k] = v
	}
	for i, assignment := range assignments {
		am := assignRegex.FindStringSubmatch(assignment)
		if am == nil {
			return errors.Errorf("memory store: unsupported assignment %q", assignment)
		}
		row[am[1]] = normalize(args[i])
	}

	if err := a.validate(t, row); err != nil {
		return err
	}

	t.rows[id] = row
	a.stats.Updates++
	return nil
}

func (a *Adapter) validate(t *table, row Row) error {
	for col := range row {
		if _, ok := t.def.Column(col); !ok {
			return errors.Errorf("memory store: table %s has no column %s", t.def.Name, col)
		}
	}

	for _, col := range t.def.Columns {
		value := row[col.Name]
		if value == nil {
			if !col.Nullable {
				return errors.Errorf("memory store: NOT NULL constraint failed: %s.%s", t.def.Name, col.Name)
			}
			continue
		}
		if col.ForeignKeyTable == "" {
			continue
		}

		ref, err := a.table(col.ForeignKeyTable)
		if err != nil {
			return err
		}
		refID, ok := value.(int64)
		if !ok {
			return errors.Errorf("memory store: %s.%s must be an integer, got %T", t.def.Name, col.Name, value)
		}
		if _, exists := ref.rows[refID]; !exists {
			return errors.Errorf("memory store: FOREIGN KEY constraint failed: %s.%s = %d", t.def.Name, col.Name, refID)
		}
	}
	return nil
}

func (a *Adapter) table(name string) (*table, error) {
	t, ok := a.tables[name]
	if !ok {
		return nil, errors.Errorf("memory store: no such table: %s", name)
	}
	return t, nil
}

func (a *Adapter) CreateTable(ctx context.Context, def types.SchemaTable) error {
	if err := common.ValidateIdentifier(def.Name); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.tables[def.Name]; exists {
		return errors.Errorf("memory store: table %s already exists", def.Name)
	}
	if def.PrimaryKey() == "" {
		return errors.Errorf("memory store: table %s has no primary key", def.Name)
	}
	for _, fk := range def.ForeignKeys() {
		if fk.ForeignKeyTable == def.Name {
			continue
		}
		if _, exists := a.tables[fk.ForeignKeyTable]; !exists {
			return errors.Errorf("memory store: %s.%s references missing table %s", def.Name, fk.Name, fk.ForeignKeyTable)
		}
	}

	a.tables[def.Name] = &table{def: def, rows: make(map[int64]Row)}
	a.stats.Creates++
	return nil
}

// DropTable fails when the table is missing or another table still references it.
func (a *Adapter) DropTable(ctx context.Context, tableName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.table(tableName); err != nil {
		return err
	}
	for name, other := range a.tables {
		if name == tableName {
			continue
		}
		for _, fk := range other.def.ForeignKeys() {
			if fk.ForeignKeyTable == tableName {
				return errors.Errorf("memory store: cannot drop table %s: referenced by %s.%s", tableName, name, fk.Name)
			}
		}
	}

	delete(a.tables, tableName)
	a.stats.Drops++
	return nil
}

func (a *Adapter) GenerateCreateTableSQL(def types.SchemaTable) string {
	var cols []string
	for _, col := range def.Columns {
		cols = append(cols, col.Name+" "+col.Type)
	}
	return "-- memory table\nCREATE TABLE " + def.Name + " (" + strings.Join(cols, ", ") + ");"
}

func (a *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.table(tableName)
	if err != nil {
		return 0, err
	}
	return len(t.rows), nil
}

// Rows returns a copy of the rows of tableName ordered by primary key.
func (a *Adapter) Rows(tableName string) ([]Row, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.table(tableName)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		row := make(Row, len(t.rows[id]))
		for k, v := range t.rows[id] {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitList(list string) []string {
	parts := strings.Split(list, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// normalize dereferences pointers and widens integers to int64.
func normalize(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	}
	return rv.Interface()
}
