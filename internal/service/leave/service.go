package leave

import (
	"context"
	"fmt"

	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
)

// Service is the read side of the leave module plus catalog administration.
type Service struct {
	leave.LeaveTypeRepository
	leave.LeaveApplicationRepository
	visibility *VisibilityService
}

func NewService(
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveApplicationRepository leave.LeaveApplicationRepository,
	visibility *VisibilityService,
) *Service {
	return &Service{
		LeaveTypeRepository:        leaveTypeRepository,
		LeaveApplicationRepository: leaveApplicationRepository,
		visibility:                 visibility,
	}
}

// ListTypes returns the catalog; enabledOnly is what employee-facing screens
// use, admin screens list everything.
func (s *Service) ListTypes(ctx context.Context, enabledOnly bool) ([]leave.LeaveType, error) {
	return s.LeaveTypeRepository.List(ctx, enabledOnly)
}

// CreateType adds a catalog entry. Codes are unique for the catalog's life.
func (s *Service) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	exists, err := s.LeaveTypeRepository.ExistsByCode(ctx, req.Code)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to check leave type code: %w", err)
	}
	if exists {
		return leave.LeaveType{}, leave.ErrLeaveTypeCodeExists
	}

	return s.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Code:               req.Code,
		Name:               req.Name,
		Category:           leave.LeaveCategory(req.Category),
		GenderRestriction:  req.GenderRestriction,
		DefaultEntitlement: req.DefaultEntitlement,
	})
}

// UpdateType patches a catalog entry. Disabling is the only removal: historic
// applications keep their type reference.
func (s *Service) UpdateType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	lt, err := s.LeaveTypeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveType{}, err
	}

	if req.Name != nil {
		lt.Name = *req.Name
	}
	if req.Category != nil {
		lt.Category = leave.LeaveCategory(*req.Category)
	}
	if req.GenderRestriction != nil {
		lt.GenderRestriction = req.GenderRestriction
	}
	if req.DefaultEntitlement != nil {
		lt.DefaultEntitlement = *req.DefaultEntitlement
	}
	if req.IsEnabled != nil {
		lt.IsEnabled = *req.IsEnabled
	}

	if err := s.LeaveTypeRepository.Update(ctx, lt); err != nil {
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// DisableType retires a catalog entry. The row stays behind so historic
// applications keep resolving their type name.
func (s *Service) DisableType(ctx context.Context, id string) error {
	if _, err := s.LeaveTypeRepository.GetByID(ctx, id); err != nil {
		return err
	}
	return s.LeaveTypeRepository.SetEnabled(ctx, id, false)
}

// ListMine returns the principal's own applications, newest first. An
// unprovisioned principal gets an empty list, never an error.
func (s *Service) ListMine(ctx context.Context, p identity.Principal, limit int) ([]leave.LeaveApplication, error) {
	if p.Employee == nil {
		return []leave.LeaveApplication{}, nil
	}
	return s.LeaveApplicationRepository.ListByEmployee(ctx, p.Employee.ID, limit)
}

// ListPending returns the principal's approval queue, oldest first.
func (s *Service) ListPending(ctx context.Context, p identity.Principal, limit int) ([]leave.LeaveApplication, error) {
	scope, visible, err := s.visibility.ScopeForPending(ctx, p)
	if err != nil {
		return nil, err
	}
	if !visible {
		return []leave.LeaveApplication{}, nil
	}
	return s.LeaveApplicationRepository.ListPending(ctx, scope, limit)
}

// ListHistory returns role-scoped history, newest first, with the total row
// count for pagination.
func (s *Service) ListHistory(ctx context.Context, p identity.Principal, filter leave.HistoryFilter) ([]leave.LeaveApplication, int64, error) {
	scope, visible, err := s.visibility.ScopeForHistory(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	if !visible {
		return []leave.LeaveApplication{}, 0, nil
	}
	return s.LeaveApplicationRepository.ListHistory(ctx, scope, filter)
}

// GetApplication returns one application the principal may see.
func (s *Service) GetApplication(ctx context.Context, p identity.Principal, id string) (leave.LeaveApplication, error) {
	app, err := s.LeaveApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	scope, visible, err := s.visibility.ScopeForHistory(ctx, p)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	if !visible || !scopeAllows(scope, app.EmployeeID) {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	return app, nil
}

func scopeAllows(scope leave.ApplicationScope, employeeID string) bool {
	if scope.ExcludeEmployeeID != nil && *scope.ExcludeEmployeeID == employeeID {
		return false
	}
	if scope.EmployeeIDs == nil {
		return true
	}
	for _, id := range *scope.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}
