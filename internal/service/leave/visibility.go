package leave

import (
	"context"
	"fmt"

	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
)

// VisibilityService turns a resolved principal into an application query
// scope. The repository interprets the scope; this layer only decides it.
type VisibilityService struct {
	employee.EmployeeRepository
}

func NewVisibilityService(employeeRepository employee.EmployeeRepository) *VisibilityService {
	return &VisibilityService{EmployeeRepository: employeeRepository}
}

// ScopeForHistory decides which rows the principal may see in history
// listings. The second return is false when nothing is visible and the caller
// must not query at all.
func (s *VisibilityService) ScopeForHistory(ctx context.Context, p identity.Principal) (leave.ApplicationScope, bool, error) {
	if !p.Provisioned {
		return leave.ApplicationScope{}, false, nil
	}

	switch p.Role {
	case user.RoleAdmin:
		return leave.ApplicationScope{}, true, nil
	case user.RoleHR:
		// HR sees everyone except themselves; their own rows route through
		// the regular approval chain.
		scope := leave.ApplicationScope{}
		if p.Employee != nil {
			scope.ExcludeEmployeeID = &p.Employee.ID
		}
		return scope, true, nil
	case user.RoleManager:
		return s.teamScope(ctx, p)
	default:
		if p.Employee == nil {
			return leave.ApplicationScope{}, false, nil
		}
		ids := []string{p.Employee.ID}
		return leave.ApplicationScope{EmployeeIDs: &ids}, true, nil
	}
}

// ScopeForPending decides which pending rows the principal may act on.
func (s *VisibilityService) ScopeForPending(ctx context.Context, p identity.Principal) (leave.ApplicationScope, bool, error) {
	if !p.Provisioned {
		return leave.ApplicationScope{}, false, nil
	}

	switch p.Role {
	case user.RoleAdmin:
		return leave.ApplicationScope{
			ApproverRoles: []user.Role{user.RoleHR, user.RoleManager},
		}, true, nil
	case user.RoleHR:
		// HR's queue shows rows waiting at manager, never their own. Rows
		// routed to hr itself surface only in the admin queue; hr can still
		// act on them directly through the application detail.
		scope := leave.ApplicationScope{
			ApproverRoles: []user.Role{user.RoleManager},
		}
		if p.Employee != nil {
			scope.ExcludeEmployeeID = &p.Employee.ID
		}
		return scope, true, nil
	case user.RoleManager:
		scope, ok, err := s.teamScope(ctx, p)
		if err != nil || !ok {
			return leave.ApplicationScope{}, false, err
		}
		scope.ApproverRoles = []user.Role{user.RoleManager}
		return scope, true, nil
	default:
		// Team members and finance have no approval queue.
		return leave.ApplicationScope{}, false, nil
	}
}

// teamScope restricts to the manager's active direct reports. A manager with
// no reports short-circuits to invisible, skipping the application query.
func (s *VisibilityService) teamScope(ctx context.Context, p identity.Principal) (leave.ApplicationScope, bool, error) {
	if p.Employee == nil {
		return leave.ApplicationScope{}, false, nil
	}

	reports, err := s.EmployeeRepository.ListDirectReports(ctx, p.Employee.ID)
	if err != nil {
		return leave.ApplicationScope{}, false, fmt.Errorf("failed to list direct reports: %w", err)
	}
	if len(reports) == 0 {
		return leave.ApplicationScope{}, false, nil
	}

	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.ID)
	}
	return leave.ApplicationScope{EmployeeIDs: &ids}, true, nil
}
