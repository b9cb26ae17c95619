package seeder

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/orgseed/internal/apperror"
	"github.com/Rana718/orgseed/internal/database/memory"
	"github.com/Rana718/orgseed/internal/models"
	"github.com/Rana718/orgseed/internal/repository"
	"github.com/Rana718/orgseed/internal/schema"
)

// sequenceStore accepts every statement and hands out increasing ids.
type sequenceStore struct {
	nextID int64
	calls  int
}

func (s *sequenceStore) StatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder
}

func (s *sequenceStore) Exec(ctx context.Context, query squirrel.Sqlizer) error {
	s.calls++
	return nil
}

func (s *sequenceStore) InsertReturningID(ctx context.Context, query squirrel.InsertBuilder, pkColumn string) (int64, error) {
	s.calls++
	s.nextID++
	return s.nextID, nil
}

// poolFaker has nothing left to hand out.
type poolFaker struct{}

func (poolFaker) UniqueName() (string, error) {
	return "", apperror.Wrap(apperror.CodeUniquePoolExhausted, apperror.ErrUniquePoolExhausted, "names")
}

func (poolFaker) UniqueCatchPhrase() (string, error) {
	return "", apperror.Wrap(apperror.CodeUniquePoolExhausted, apperror.ErrUniquePoolExhausted, "phrases")
}

func newMemoryStore(t *testing.T) *memory.Adapter {
	t.Helper()
	store := memory.New()
	for _, table := range schema.Tables() {
		require.NoError(t, store.CreateTable(context.Background(), table))
	}
	return store
}

func newGenerators(store repository.Store, seed int64) (*DepartmentGenerator, *EmployeeGenerator) {
	faker := NewUniqueFaker(DefaultFakerSeed, DefaultUniqueAttempts)
	rng := rand.New(rand.NewSource(seed))
	return NewDepartmentGenerator(repository.NewDepartmentRepository(store), faker),
		NewEmployeeGenerator(repository.NewEmployeeRepository(store), faker, rng)
}

func TestGenerateEmptyInputsIssueNoStatements(t *testing.T) {
	ctx := context.Background()
	store := &sequenceStore{}
	departments, employees := newGenerators(store, 1)

	depts, err := departments.Generate(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, depts)

	depts, err = departments.Generate(ctx, -3)
	require.NoError(t, err)
	assert.Empty(t, depts)

	emps, err := employees.Generate(ctx, 25, nil)
	require.NoError(t, err)
	assert.Empty(t, emps)

	emps, err = employees.Generate(ctx, 25, []*models.Department{})
	require.NoError(t, err)
	assert.Empty(t, emps)

	assert.Zero(t, store.calls)
}

func TestGenerateBuildsAForest(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	departmentGen, employeeGen := newGenerators(store, 42)

	departments, err := departmentGen.Generate(ctx, 5)
	require.NoError(t, err)
	require.Len(t, departments, 5)

	employees, err := employeeGen.Generate(ctx, 60, departments)
	require.NoError(t, err)
	require.Len(t, employees, 60)

	assert.Nil(t, employees[0].Chief)

	position := make(map[*models.Employee]int, len(employees))
	for i, e := range employees {
		require.True(t, e.IsPersistent())
		assert.Contains(t, departments, e.Department)
		assert.GreaterOrEqual(t, e.Salary, MinSalary)
		assert.LessOrEqual(t, e.Salary, MaxSalary)

		if e.Chief != nil {
			chiefPos, ok := position[e.Chief]
			require.True(t, ok, "chief of employee %d was not generated before it", i)
			assert.Less(t, chiefPos, i)
			assert.Less(t, *e.Chief.ID, *e.ID)
		}
		position[e] = i
	}

	stats := store.Stats()
	assert.Equal(t, 65, stats.Inserts)
	assert.Zero(t, stats.Updates)
}

func TestChiefDistributionIsUniform(t *testing.T) {
	ctx := context.Background()
	const (
		trials = 4000
		size   = 4
	)

	id := int64(1)
	departments := []*models.Department{{ID: &id, Name: "Sales"}}
	rng := rand.New(rand.NewSource(7))

	// outcomes[0] counts "no chief" for the last employee, outcomes[k+1] counts chief k.
	outcomes := make([]int, size)
	for i := 0; i < trials; i++ {
		gen := NewEmployeeGenerator(
			repository.NewEmployeeRepository(&sequenceStore{}),
			NewUniqueFaker(uint64(i+1), DefaultUniqueAttempts),
			rng,
		)
		employees, err := gen.Generate(ctx, size, departments)
		require.NoError(t, err)

		last := employees[size-1]
		if last.Chief == nil {
			outcomes[0]++
			continue
		}
		for k, e := range employees[:size-1] {
			if e == last.Chief {
				outcomes[k+1]++
			}
		}
	}

	expected := trials / size
	for k, n := range outcomes {
		assert.InDelta(t, expected, n, float64(expected)*0.15, "outcome %d", k)
	}
}

func TestGenerateStopsOnFakerExhaustion(t *testing.T) {
	ctx := context.Background()
	store := &sequenceStore{}
	departmentGen := NewDepartmentGenerator(repository.NewDepartmentRepository(store), poolFaker{})

	depts, err := departmentGen.Generate(ctx, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUniquePoolExhausted)
	assert.Empty(t, depts)
	assert.Zero(t, store.calls)
}
