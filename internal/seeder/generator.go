package seeder

import (
	"context"
	"math/rand"

	"github.com/Rana718/orgseed/internal/logger"
	"github.com/Rana718/orgseed/internal/models"
	"github.com/Rana718/orgseed/internal/repository"
)

type DepartmentGenerator struct {
	repo  *repository.DepartmentRepository
	faker FakeDataProvider
}

func NewDepartmentGenerator(repo *repository.DepartmentRepository, faker FakeDataProvider) *DepartmentGenerator {
	return &DepartmentGenerator{repo: repo, faker: faker}
}

// Generate builds and saves count departments named by unique catch phrases.
func (g *DepartmentGenerator) Generate(ctx context.Context, count int) ([]*models.Department, error) {
	departments := make([]*models.Department, 0, max(count, 0))

	for i := 0; i < count; i++ {
		name, err := g.faker.UniqueCatchPhrase()
		if err != nil {
			return departments, err
		}

		d := models.NewDepartment(name)
		if err := g.repo.Save(ctx, d); err != nil {
			return departments, err
		}
		logger.Debug(ctx).Int64("id", *d.ID).Str("name", d.Name).Msg("department saved")

		departments = append(departments, d)
	}

	return departments, nil
}

type EmployeeGenerator struct {
	repo  *repository.EmployeeRepository
	faker FakeDataProvider
	rng   *rand.Rand
}

func NewEmployeeGenerator(repo *repository.EmployeeRepository, faker FakeDataProvider, rng *rand.Rand) *EmployeeGenerator {
	return &EmployeeGenerator{repo: repo, faker: faker, rng: rng}
}

// Generate builds and saves count employees spread over departments. Each
// employee reports to no one or to an employee generated before it, with
// "no chief" as likely as any single earlier employee.
func (g *EmployeeGenerator) Generate(ctx context.Context, count int, departments []*models.Department) ([]*models.Employee, error) {
	if len(departments) == 0 {
		return []*models.Employee{}, nil
	}

	employees := make([]*models.Employee, 0, max(count, 0))

	for i := 0; i < count; i++ {
		department := departments[g.rng.Intn(len(departments))]

		var chief *models.Employee
		if idx := g.rng.Intn(len(employees)+1) - 1; idx >= 0 {
			chief = employees[idx]
		}

		name, err := g.faker.UniqueName()
		if err != nil {
			return employees, err
		}
		salary := MinSalary + g.rng.Intn(MaxSalary-MinSalary+1)

		e := models.NewEmployee(department, chief, name, salary)
		if err := g.repo.Save(ctx, e); err != nil {
			return employees, err
		}

		event := logger.Debug(ctx).Int64("id", *e.ID).Int64("department_id", *department.ID)
		if chief != nil {
			event = event.Int64("chief_id", *chief.ID)
		}
		event.Str("name", e.Name).Int("salary", e.Salary).Msg("employee saved")

		employees = append(employees, e)
	}

	return employees, nil
}
