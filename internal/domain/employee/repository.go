package employee

import "context"

// EmployeeRepository - interface for employees table
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListDirectReports(ctx context.Context, managerID string) ([]Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) error
	SetActive(ctx context.Context, id string, active bool) error
}

// ProfileRepository - interface for profiles table
type ProfileRepository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, p Profile) error
}
