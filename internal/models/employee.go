package models

// Employee belongs to exactly one department and reports to at most one chief.
// A nil Chief marks the top of a hierarchy.
type Employee struct {
	ID         *int64
	Department *Department
	Chief      *Employee
	Name       string
	Salary     int
}

// NewEmployee builds a transient employee. Department and Chief are expected
// to be persistent; the repository rejects the save otherwise.
func NewEmployee(department *Department, chief *Employee, name string, salary int) *Employee {
	return &Employee{
		Department: department,
		Chief:      chief,
		Name:       TruncateName(name),
		Salary:     salary,
	}
}

func (e *Employee) IsPersistent() bool {
	return e != nil && e.ID != nil
}

// ChiefID returns the chief's identity, or nil when there is no chief.
func (e *Employee) ChiefID() *int64 {
	if e.Chief == nil {
		return nil
	}
	return e.Chief.ID
}
