package seeder

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/apperror"
	"github.com/Rana718/orgseed/internal/database"
	"github.com/Rana718/orgseed/internal/logger"
	"github.com/Rana718/orgseed/internal/repository"
	"github.com/Rana718/orgseed/internal/schema"
	"github.com/Rana718/orgseed/internal/types"
)

type Seeder struct {
	adapter     database.DatabaseAdapter
	graph       *DependencyGraph
	departments *DepartmentGenerator
	employees   *EmployeeGenerator
	rng         *rand.Rand
	opts        Options
}

// NewSeeder wires the generators to adapter. The adapter must already be
// connected; the seeder does not close it.
func NewSeeder(adapter database.DatabaseAdapter, faker FakeDataProvider, rng *rand.Rand, opts Options) *Seeder {
	graph := NewDependencyGraph()
	for _, table := range schema.Tables() {
		graph.AddTable(table)
	}

	return &Seeder{
		adapter:     adapter,
		graph:       graph,
		departments: NewDepartmentGenerator(repository.NewDepartmentRepository(adapter), faker),
		employees:   NewEmployeeGenerator(repository.NewEmployeeRepository(adapter), faker, rng),
		rng:         rng,
		opts:        opts,
	}
}

// ResetSchema drops every table, dependents first, then recreates them.
// A failed drop is logged and skipped; a failed create aborts the reset.
func (s *Seeder) ResetSchema(ctx context.Context) error {
	dropOrder, err := s.graph.BuildDropOrder()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err, "failed to order tables")
	}

	for _, name := range dropOrder {
		if err := s.adapter.DropTable(ctx, name); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("table", name).
				Str("code", string(apperror.CodeSchemaReset)).
				Msg("failed to drop table")
			continue
		}
		logger.Debug(ctx).Str("table", name).Msg("table dropped")
	}

	for _, name := range s.graph.GetOrder() {
		table, _ := s.graph.Table(name)
		if err := s.adapter.CreateTable(ctx, table); err != nil {
			return apperror.Wrapf(apperror.CodePersistence, err, "failed to create table %s", name)
		}
		logger.Debug(ctx).Str("table", name).Msg("table created")
	}

	return nil
}

// Seed generates departmentCount departments, then employeeCount employees
// spread over them. Rows saved before a failure stay in the store.
func (s *Seeder) Seed(ctx context.Context, departmentCount, employeeCount int) (*Result, error) {
	departments, err := s.departments.Generate(ctx, departmentCount)
	if err != nil {
		return s.aborted(ctx, &Result{Departments: departments}, errors.WithMessage(err, "failed to generate departments"))
	}

	employees, err := s.employees.Generate(ctx, employeeCount, departments)
	if err != nil {
		return s.aborted(ctx, &Result{Departments: departments, Employees: employees}, errors.WithMessage(err, "failed to generate employees"))
	}

	logger.Info(ctx).
		Int("departments", len(departments)).
		Int("employees", len(employees)).
		Msg("seeding complete")

	return &Result{Departments: departments, Employees: employees}, nil
}

// aborted logs what was saved before err; those rows stay in the store.
func (s *Seeder) aborted(ctx context.Context, partial *Result, err error) (*Result, error) {
	logger.Error(ctx).
		Err(err).
		Str("code", string(apperror.GetCode(err))).
		Int("departments_saved", len(partial.Departments)).
		Int("employees_saved", len(partial.Employees)).
		Msg("seeding aborted")
	return partial, err
}

// Run resets the schema and seeds it with counts drawn from the configured ranges.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	departmentCount, employeeCount, err := s.PickCounts()
	if err != nil {
		return nil, err
	}

	if err := s.ResetSchema(ctx); err != nil {
		return nil, err
	}

	return s.Seed(ctx, departmentCount, employeeCount)
}

// PickCounts draws a department and an employee count from the configured ranges.
func (s *Seeder) PickCounts() (int, int, error) {
	departments, err := pick(s.rng, s.opts.Departments)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "departments")
	}
	employees, err := pick(s.rng, s.opts.Employees)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "employees")
	}
	return departments, employees, nil
}

// RowCounts reports the row count of every table in creation order.
func (s *Seeder) RowCounts(ctx context.Context) ([]TableCount, error) {
	order, err := s.graph.BuildCreationOrder()
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err, "failed to order tables")
	}

	counts := make([]TableCount, 0, len(order))
	for _, name := range order {
		rows, err := s.adapter.GetTableRowCount(ctx, name)
		if err != nil {
			return nil, apperror.Wrapf(apperror.CodePersistence, err, "failed to count rows of %s", name)
		}
		counts = append(counts, TableCount{Table: name, Rows: rows})
	}
	return counts, nil
}

// Tables returns the table definitions in creation order.
func (s *Seeder) Tables() ([]types.SchemaTable, error) {
	order, err := s.graph.BuildCreationOrder()
	if err != nil {
		return nil, err
	}
	tables := make([]types.SchemaTable, 0, len(order))
	for _, name := range order {
		table, _ := s.graph.Table(name)
		tables = append(tables, table)
	}
	return tables, nil
}

func pick(rng *rand.Rand, r Range) (int, error) {
	if r.Min < 0 || r.Max < r.Min {
		return 0, apperror.New(apperror.CodeConfig, "invalid range: min must be >= 0 and <= max")
	}
	return r.Min + rng.Intn(r.Max-r.Min+1), nil
}
