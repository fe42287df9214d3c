package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
)

// Principal is the resolved identity of a request: the primary role plus the
// personnel record, when one exists.
type Principal struct {
	UserID string
	Role   user.Role
	// Employee is nil for principals without a personnel record. Admins run
	// the system without one; anyone else in this state is simply not yet
	// provisioned.
	Employee *employee.Employee
	// Provisioned is false when a non-admin principal has no employee record.
	// Reads for such a principal degrade to empty result sets.
	Provisioned bool
}

type ResolverService struct {
	user.RoleRepository
	employee.EmployeeRepository
}

func NewResolverService(roleRepository user.RoleRepository, employeeRepository employee.EmployeeRepository) *ResolverService {
	return &ResolverService{
		RoleRepository:     roleRepository,
		EmployeeRepository: employeeRepository,
	}
}

// Resolve maps a principal to its primary role and personnel record. A
// principal with several role assignments resolves to the highest-privilege
// one.
func (s *ResolverService) Resolve(ctx context.Context, userID string) (Principal, error) {
	roles, err := s.RoleRepository.GetRolesByUserID(ctx, userID)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to get roles for user: %w", err)
	}

	role, ok := user.PrimaryRole(roles)
	if !ok {
		return Principal{}, user.ErrNoRoleAssigned
	}

	principal := Principal{UserID: userID, Role: role, Provisioned: true}

	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return Principal{}, fmt.Errorf("failed to get employee for user: %w", err)
		}
		// Admins legitimately operate without a personnel record. Everyone
		// else is treated as not yet provisioned rather than an error.
		if role != user.RoleAdmin {
			principal.Provisioned = false
		}
		return principal, nil
	}

	principal.Employee = &emp
	return principal, nil
}
