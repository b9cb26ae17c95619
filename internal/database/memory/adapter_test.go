package memory

import (
	"context"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/orgseed/internal/schema"
)

func newSchema(t *testing.T) *Adapter {
	t.Helper()
	a := New()
	ctx := context.Background()
	require.NoError(t, a.CreateTable(ctx, schema.Department))
	require.NoError(t, a.CreateTable(ctx, schema.Employee))
	return a
}

func insertDepartment(t *testing.T, a *Adapter, name string) int64 {
	t.Helper()
	id, err := a.InsertReturningID(context.Background(),
		a.StatementBuilder().Insert("department").Columns("name").Values(name), "id")
	require.NoError(t, err)
	return id
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	a := newSchema(t)

	assert.Equal(t, int64(1), insertDepartment(t, a, "Sales"))
	assert.Equal(t, int64(2), insertDepartment(t, a, "Research"))

	count, err := a.GetTableRowCount(context.Background(), "department")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpdateKeepsRowIdentity(t *testing.T) {
	a := newSchema(t)
	ctx := context.Background()
	id := insertDepartment(t, a, "Sales")

	err := a.Exec(ctx, a.StatementBuilder().Update("department").
		Set("name", "Marketing").
		Where(squirrel.Eq{"id": id}))
	require.NoError(t, err)

	rows, err := a.Rows("department")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0]["id"])
	assert.Equal(t, "Marketing", rows[0]["name"])
}

func TestForeignKeysAreEnforced(t *testing.T) {
	a := newSchema(t)
	ctx := context.Background()
	qb := a.StatementBuilder()
	dept := insertDepartment(t, a, "Sales")

	var noChief *int64
	boss, err := a.InsertReturningID(ctx, qb.Insert("employee").
		Columns("department_id", "chief_id", "name", "salary").
		Values(dept, noChief, "Ada", 50000), "id")
	require.NoError(t, err)

	_, err = a.InsertReturningID(ctx, qb.Insert("employee").
		Columns("department_id", "chief_id", "name", "salary").
		Values(dept, &boss, "Grace", 40000), "id")
	assert.NoError(t, err)

	_, err = a.InsertReturningID(ctx, qb.Insert("employee").
		Columns("department_id", "chief_id", "name", "salary").
		Values(int64(99), nil, "Linus", 30000), "id")
	assert.ErrorContains(t, err, "FOREIGN KEY")

	_, err = a.InsertReturningID(ctx, qb.Insert("employee").
		Columns("department_id", "chief_id", "name", "salary").
		Values(dept, int64(42), "Ken", 30000), "id")
	assert.ErrorContains(t, err, "FOREIGN KEY")

	count, err := a.GetTableRowCount(ctx, "employee")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rows, err := a.Rows("employee")
	require.NoError(t, err)
	assert.Nil(t, rows[0]["chief_id"])
	assert.Equal(t, boss, rows[1]["chief_id"])
}

func TestNotNullIsEnforced(t *testing.T) {
	a := newSchema(t)
	dept := insertDepartment(t, a, "Sales")

	_, err := a.InsertReturningID(context.Background(), a.StatementBuilder().Insert("employee").
		Columns("department_id", "name").
		Values(dept, "Ada"), "id")
	assert.ErrorContains(t, err, "NOT NULL constraint failed: employee.salary")
}

func TestUnknownColumnRejected(t *testing.T) {
	a := newSchema(t)

	_, err := a.InsertReturningID(context.Background(), a.StatementBuilder().Insert("department").
		Columns("name", "budget").
		Values("Sales", 10), "id")
	assert.ErrorContains(t, err, "no column budget")
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()

	t.Run("missing table", func(t *testing.T) {
		a := New()
		assert.ErrorContains(t, a.DropTable(ctx, "employee"), "no such table")
	})

	t.Run("still referenced", func(t *testing.T) {
		a := newSchema(t)
		assert.ErrorContains(t, a.DropTable(ctx, "department"), "referenced by employee.department_id")
	})

	t.Run("dependents first", func(t *testing.T) {
		a := newSchema(t)
		require.NoError(t, a.DropTable(ctx, "employee"))
		require.NoError(t, a.DropTable(ctx, "department"))

		_, err := a.GetTableRowCount(ctx, "department")
		assert.Error(t, err)
	})
}

func TestCreateTable(t *testing.T) {
	ctx := context.Background()

	a := New()
	assert.ErrorContains(t, a.CreateTable(ctx, schema.Employee), "references missing table department")

	require.NoError(t, a.CreateTable(ctx, schema.Department))
	assert.ErrorContains(t, a.CreateTable(ctx, schema.Department), "already exists")
}

func TestStatsCountEveryStatement(t *testing.T) {
	a := newSchema(t)
	ctx := context.Background()
	id := insertDepartment(t, a, "Sales")
	require.NoError(t, a.Exec(ctx, a.StatementBuilder().Update("department").
		Set("name", "Ops").Where(squirrel.Eq{"id": id})))
	require.NoError(t, a.DropTable(ctx, "employee"))

	stats := a.Stats()
	assert.Equal(t, Stats{Inserts: 1, Updates: 1, Creates: 2, Drops: 1}, stats)
	assert.Equal(t, 5, stats.Total())
}

func TestGenerateCreateTableSQL(t *testing.T) {
	sql := New().GenerateCreateTableSQL(schema.Department)
	assert.Contains(t, sql, "CREATE TABLE department (id SERIAL, name VARCHAR(100));")
}
