package repository

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Rana718/orgseed/internal/apperror"
	"github.com/Rana718/orgseed/internal/models"
	"github.com/Rana718/orgseed/internal/schema"
)

type EmployeeRepository struct {
	store Store
}

func NewEmployeeRepository(store Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

// Save inserts a transient employee and records its identity, or rewrites
// every field of a persistent one under the same identity. References to
// transient entities, or to the employee itself as chief, are rejected before
// any statement is issued.
func (r *EmployeeRepository) Save(ctx context.Context, e *models.Employee) error {
	if e == nil {
		return apperror.New(apperror.CodeInternal, "cannot save a nil employee")
	}
	if err := checkReferences(e); err != nil {
		return err
	}

	qb := r.store.StatementBuilder()
	departmentID := *e.Department.ID
	chiefID := e.ChiefID()

	if e.IsPersistent() {
		query := qb.Update(schema.EmployeeTable).
			Set("department_id", departmentID).
			Set("chief_id", chiefID).
			Set("name", e.Name).
			Set("salary", e.Salary).
			Where(squirrel.Eq{idColumn: *e.ID})
		if err := r.store.Exec(ctx, query); err != nil {
			return apperror.Wrapf(apperror.CodePersistence, err, "failed to update employee %d", *e.ID)
		}
		return nil
	}

	query := qb.Insert(schema.EmployeeTable).
		Columns("department_id", "chief_id", "name", "salary").
		Values(departmentID, chiefID, e.Name, e.Salary)
	id, err := r.store.InsertReturningID(ctx, query, idColumn)
	if err != nil {
		return apperror.Wrapf(apperror.CodePersistence, err, "failed to insert employee %q", e.Name)
	}
	e.ID = &id
	return nil
}

func checkReferences(e *models.Employee) error {
	if !e.Department.IsPersistent() {
		return apperror.Wrapf(apperror.CodeInvalidReference, apperror.ErrTransientReference,
			"employee %q: department", e.Name)
	}
	if e.Chief == nil {
		return nil
	}
	if e.Chief == e || (e.ID != nil && e.Chief.ID != nil && *e.Chief.ID == *e.ID) {
		return apperror.Wrapf(apperror.CodeInvalidReference, apperror.ErrSelfReference,
			"employee %q", e.Name)
	}
	if !e.Chief.IsPersistent() {
		return apperror.Wrapf(apperror.CodeInvalidReference, apperror.ErrTransientReference,
			"employee %q: chief", e.Name)
	}
	if reportsTo(e.Chief, e) {
		return apperror.Wrapf(apperror.CodeInvalidReference, apperror.ErrCyclicReference,
			"employee %q: chief %q", e.Name, e.Chief.Name)
	}
	return nil
}

// reportsTo walks the chief chain above start and reports whether it reaches e.
func reportsTo(start, e *models.Employee) bool {
	seen := make(map[*models.Employee]bool)
	for c := start.Chief; c != nil && !seen[c]; c = c.Chief {
		if c == e || (e.ID != nil && c.ID != nil && *c.ID == *e.ID) {
			return true
		}
		seen[c] = true
	}
	return false
}
