package repository

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Rana718/orgseed/internal/apperror"
	"github.com/Rana718/orgseed/internal/models"
	"github.com/Rana718/orgseed/internal/schema"
)

type DepartmentRepository struct {
	store Store
}

func NewDepartmentRepository(store Store) *DepartmentRepository {
	return &DepartmentRepository{store: store}
}

// Save inserts a transient department and records its identity, or updates
// the name of a persistent one under the same identity.
func (r *DepartmentRepository) Save(ctx context.Context, d *models.Department) error {
	if d == nil {
		return apperror.New(apperror.CodeInternal, "cannot save a nil department")
	}

	qb := r.store.StatementBuilder()

	if d.IsPersistent() {
		query := qb.Update(schema.DepartmentTable).
			Set("name", d.Name).
			Where(squirrel.Eq{idColumn: *d.ID})
		if err := r.store.Exec(ctx, query); err != nil {
			return apperror.Wrapf(apperror.CodePersistence, err, "failed to update department %d", *d.ID)
		}
		return nil
	}

	query := qb.Insert(schema.DepartmentTable).
		Columns("name").
		Values(d.Name)
	id, err := r.store.InsertReturningID(ctx, query, idColumn)
	if err != nil {
		return apperror.Wrapf(apperror.CodePersistence, err, "failed to insert department %q", d.Name)
	}
	d.ID = &id
	return nil
}
