package leave

import (
	"context"
	"time"

	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
)

// ApplicationScope restricts which application rows a query may return. Built
// by the visibility filter, interpreted by the repository.
type ApplicationScope struct {
	// EmployeeIDs non-nil restricts rows to these employees. An empty non-nil
	// slice means "nothing visible" and callers short-circuit before querying.
	EmployeeIDs *[]string
	// ExcludeEmployeeID removes one employee's rows (HR never manages their
	// own applications).
	ExcludeEmployeeID *string
	// ApproverRoles restricts pending rows to those routed to one of these
	// roles. Ignored for history queries.
	ApproverRoles []user.Role
}

// HistoryFilter narrows and pages a history listing.
type HistoryFilter struct {
	Year     *int
	Status   *ApplicationStatus
	Page     int
	PageSize int
}

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, enabledOnly bool) ([]LeaveType, error)
	Update(ctx context.Context, lt LeaveType) error
	SetEnabled(ctx context.Context, id string, enabled bool) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	// EnsureRow returns the existing row or inserts one seeded with the
	// given entitlement.
	EnsureRow(ctx context.Context, employeeID, leaveTypeID string, year int, entitledDays float64) (LeaveBalance, error)
	AddAdjustment(ctx context.Context, id string, days float64) error
	IncrementUsed(ctx context.Context, id string, days float64) error
}

// LeaveApplicationRepository - interface for leave_applications table
type LeaveApplicationRepository interface {
	Create(ctx context.Context, app LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id string) (LeaveApplication, error)
	// ListByEmployee returns the employee's own applications, newest first.
	// limit <= 0 returns all rows.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]LeaveApplication, error)
	// ListPending returns pending rows within scope, oldest first.
	ListPending(ctx context.Context, scope ApplicationScope, limit int) ([]LeaveApplication, error)
	// ListHistory returns rows within scope, newest first, with total count.
	ListHistory(ctx context.Context, scope ApplicationScope, filter HistoryFilter) ([]LeaveApplication, int64, error)
	CountPendingByEmployee(ctx context.Context, employeeID string) (int64, error)
	SumApprovedLOPDays(ctx context.Context, employeeID string, year int) (float64, error)
	CountOnLeave(ctx context.Context, day time.Time) (int64, error)
	// Transition conditionally moves a pending application to a terminal
	// status and clears current_approver_role. Returns ErrAlreadyProcessed
	// when the row is no longer pending.
	Transition(ctx context.Context, id string, to ApplicationStatus, decidedBy string, remarks *string) error
}
