package seeder

import "github.com/Rana718/orgseed/internal/models"

const (
	MinSalary = 20000
	MaxSalary = 100000
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

type Options struct {
	Departments Range
	Employees   Range
}

func DefaultOptions() Options {
	return Options{
		Departments: Range{Min: 3, Max: 10},
		Employees:   Range{Min: 10, Max: 50},
	}
}

// Result holds the seeded entities in creation order.
type Result struct {
	Departments []*models.Department
	Employees   []*models.Employee
}

type TableCount struct {
	Table string
	Rows  int
}
