package models

type Department struct {
	ID   *int64
	Name string
}

// NewDepartment builds a transient department.
func NewDepartment(name string) *Department {
	return &Department{Name: TruncateName(name)}
}

func (d *Department) IsPersistent() bool {
	return d != nil && d.ID != nil
}
