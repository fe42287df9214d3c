package department

import "context"

// DepartmentRepository - interface for departments table
type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Update(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error
	CountActiveEmployees(ctx context.Context, id string) (int64, error)
}
