package department

import (
	"context"
	"fmt"

	"github.com/thinkforge/hrms-backend-go/internal/domain/department"
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
}

func NewDepartmentService(departmentRepository department.DepartmentRepository) *DepartmentServiceImpl {
	return &DepartmentServiceImpl{DepartmentRepository: departmentRepository}
}

func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	return s.DepartmentRepository.Create(ctx, department.Department{Name: req.Name})
}

func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.Department, error) {
	return s.DepartmentRepository.List(ctx)
}

func (s *DepartmentServiceImpl) Rename(ctx context.Context, req department.UpdateDepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	if err := s.DepartmentRepository.Update(ctx, req.ID, req.Name); err != nil {
		return department.Department{}, err
	}
	return s.DepartmentRepository.GetByID(ctx, req.ID)
}

// Delete refuses while active employees are still attached.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	count, err := s.DepartmentRepository.CountActiveEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count department employees: %w", err)
	}
	if count > 0 {
		return department.ErrDepartmentInUse
	}
	return s.DepartmentRepository.Delete(ctx, id)
}
