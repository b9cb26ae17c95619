package repository

import (
	"context"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/orgseed/internal/apperror"
	"github.com/Rana718/orgseed/internal/database/memory"
	"github.com/Rana718/orgseed/internal/models"
	"github.com/Rana718/orgseed/internal/schema"
)

func newStore(t *testing.T) *memory.Adapter {
	t.Helper()
	store := memory.New()
	for _, table := range schema.Tables() {
		require.NoError(t, store.CreateTable(context.Background(), table))
	}
	return store
}

// failingStore records calls and fails every statement.
type failingStore struct {
	calls int
}

func (s *failingStore) StatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder
}

func (s *failingStore) Exec(ctx context.Context, query squirrel.Sqlizer) error {
	s.calls++
	return errors.New("connection reset")
}

func (s *failingStore) InsertReturningID(ctx context.Context, query squirrel.InsertBuilder, pkColumn string) (int64, error) {
	s.calls++
	return 0, errors.New("connection reset")
}

func TestDepartmentSave(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	repo := NewDepartmentRepository(store)

	d := models.NewDepartment("Sales")
	require.NoError(t, repo.Save(ctx, d))
	require.True(t, d.IsPersistent())
	id := *d.ID

	d.Name = "Marketing"
	require.NoError(t, repo.Save(ctx, d))
	assert.Equal(t, id, *d.ID)

	rows, err := store.Rows(schema.DepartmentTable)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Marketing", rows[0]["name"])
	assert.Equal(t, id, rows[0]["id"])
}

func TestEmployeeSave(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	departments := NewDepartmentRepository(store)
	employees := NewEmployeeRepository(store)

	sales := models.NewDepartment("Sales")
	research := models.NewDepartment("Research")
	require.NoError(t, departments.Save(ctx, sales))
	require.NoError(t, departments.Save(ctx, research))

	boss := models.NewEmployee(sales, nil, "Ada Lovelace", 90000)
	require.NoError(t, employees.Save(ctx, boss))
	report := models.NewEmployee(sales, boss, "Grace Hopper", 45000)
	require.NoError(t, employees.Save(ctx, report))

	rows, err := store.Rows(schema.EmployeeTable)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0]["chief_id"])
	assert.Equal(t, *boss.ID, rows[1]["chief_id"])
	assert.Equal(t, int64(45000), rows[1]["salary"])

	id := *report.ID
	report.Department = research
	report.Chief = nil
	report.Salary = 50000
	require.NoError(t, employees.Save(ctx, report))
	assert.Equal(t, id, *report.ID)

	rows, err = store.Rows(schema.EmployeeTable)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, *research.ID, rows[1]["department_id"])
	assert.Nil(t, rows[1]["chief_id"])
	assert.Equal(t, int64(50000), rows[1]["salary"])
}

func TestEmployeeSaveRejectsInvalidReferences(t *testing.T) {
	ctx := context.Background()
	persisted := int64(1)
	dept := &models.Department{ID: &persisted, Name: "Sales"}

	selfChief := models.NewEmployee(dept, nil, "Narcissus", 30000)
	selfChief.Chief = selfChief

	sameID := int64(9)
	sameIDChief := &models.Employee{ID: &sameID, Department: dept, Name: "Twin", Salary: 30000}
	sameIDChief.Chief = &models.Employee{ID: &sameID, Department: dept}

	id1, id2, id3 := int64(1), int64(2), int64(3)
	top := &models.Employee{ID: &id1, Department: dept, Name: "Top"}
	middle := &models.Employee{ID: &id2, Department: dept, Chief: top, Name: "Middle"}
	bottom := &models.Employee{ID: &id3, Department: dept, Chief: middle, Name: "Bottom"}
	top.Chief = bottom

	tests := []struct {
		name     string
		employee *models.Employee
		sentinel error
	}{
		{
			name:     "transient department",
			employee: models.NewEmployee(models.NewDepartment("Ghost"), nil, "Casper", 30000),
			sentinel: apperror.ErrTransientReference,
		},
		{
			name:     "transient chief",
			employee: models.NewEmployee(dept, models.NewEmployee(dept, nil, "Unsaved", 1), "Report", 30000),
			sentinel: apperror.ErrTransientReference,
		},
		{
			name:     "chief is itself",
			employee: selfChief,
			sentinel: apperror.ErrSelfReference,
		},
		{
			name:     "chief has own id",
			employee: sameIDChief,
			sentinel: apperror.ErrSelfReference,
		},
		{
			name:     "chief is a subordinate",
			employee: top,
			sentinel: apperror.ErrCyclicReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &failingStore{}
			err := NewEmployeeRepository(store).Save(ctx, tt.employee)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, apperror.CodeInvalidReference, apperror.GetCode(err))
			assert.Zero(t, store.calls)
		})
	}
}

func TestSaveWrapsStoreFailures(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}

	d := models.NewDepartment("Sales")
	err := NewDepartmentRepository(store).Save(ctx, d)
	require.Error(t, err)
	assert.Equal(t, apperror.CodePersistence, apperror.GetCode(err))
	assert.False(t, d.IsPersistent())

	id := int64(3)
	e := models.NewEmployee(&models.Department{ID: &id}, nil, "Ada", 40000)
	e.ID = &id
	err = NewEmployeeRepository(store).Save(ctx, e)
	require.Error(t, err)
	assert.Equal(t, apperror.CodePersistence, apperror.GetCode(err))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 2, store.calls)
}

func TestEmployeeSaveKeepsChiefsAForest(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	departments := NewDepartmentRepository(store)
	employees := NewEmployeeRepository(store)

	sales := models.NewDepartment("Sales")
	require.NoError(t, departments.Save(ctx, sales))

	a := models.NewEmployee(sales, nil, "Ada Lovelace", 90000)
	require.NoError(t, employees.Save(ctx, a))
	b := models.NewEmployee(sales, a, "Grace Hopper", 45000)
	require.NoError(t, employees.Save(ctx, b))

	a.Chief = b
	err := employees.Save(ctx, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrCyclicReference)
	assert.Equal(t, apperror.CodeInvalidReference, apperror.GetCode(err))
	assert.Zero(t, store.Stats().Updates)

	rows, err := store.Rows(schema.EmployeeTable)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0]["chief_id"])
	assert.Equal(t, *a.ID, rows[1]["chief_id"])

	// Moving b under nobody and a under b is a valid reorganization.
	b.Chief = nil
	require.NoError(t, employees.Save(ctx, b))
	require.NoError(t, employees.Save(ctx, a))
}
