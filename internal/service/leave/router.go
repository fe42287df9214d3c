package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/domain/notification"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/validator"
	"github.com/thinkforge/hrms-backend-go/internal/repository/postgresql"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
)

// RouterService owns the application state machine: submission routing and
// the pending → terminal transitions.
type RouterService struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.LeaveApplicationRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
	balanceService *BalanceService
	notifier       notification.Notifier

	// runTx wraps the approve transaction; swapped out in tests.
	runTx func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error
}

func NewRouterService(
	db *database.DB,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveApplicationRepository leave.LeaveApplicationRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	employeeRepository employee.EmployeeRepository,
	balanceService *BalanceService,
	notifier notification.Notifier,
) *RouterService {
	return &RouterService{
		db:                         db,
		LeaveTypeRepository:        leaveTypeRepository,
		LeaveApplicationRepository: leaveApplicationRepository,
		LeaveBalanceRepository:     leaveBalanceRepository,
		EmployeeRepository:         employeeRepository,
		balanceService:             balanceService,
		notifier:                   notifier,
		runTx:                      postgresql.WithTransaction,
	}
}

// ApproverFor returns the role a new submission routes to. A manager's own
// leave escalates to hr; everyone else routes to manager. A single approval
// is final, there is no second hop.
func ApproverFor(submitterRole user.Role) user.Role {
	if submitterRole == user.RoleManager {
		return user.RoleHR
	}
	return user.RoleManager
}

// WorkingDays counts weekdays in [start, end] inclusive.
func WorkingDays(start, end time.Time) float64 {
	days := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// Submit validates the request against the catalog and the ledger and
// inserts a pending application routed per the submitter's role.
func (s *RouterService) Submit(ctx context.Context, p identity.Principal, req leave.ApplyLeaveRequest) (leave.LeaveApplication, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}
	if p.Employee == nil {
		return leave.LeaveApplication{}, leave.ErrEmployeeRequired
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	if end.Before(start) {
		return leave.LeaveApplication{}, leave.ErrInvalidDateRange
	}

	lt, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	if !lt.IsEnabled {
		return leave.LeaveApplication{}, leave.ErrLeaveTypeDisabled
	}
	if !EligibleByGender(lt, p.Employee.Gender) {
		return leave.LeaveApplication{}, leave.ErrGenderRestricted
	}

	days := WorkingDays(start, end)
	if days == 0 {
		return leave.LeaveApplication{}, leave.ErrZeroWorkingDays
	}

	available, err := s.balanceService.AvailableFor(ctx, p.Employee.ID, lt, start.Year())
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	// Days beyond the available balance become loss-of-pay.
	isLOP := false
	lopDays := 0.0
	if days > available {
		isLOP = true
		lopDays = days - available
	}

	approver := ApproverFor(p.Role)
	app := leave.LeaveApplication{
		EmployeeID:          p.Employee.ID,
		LeaveTypeID:         lt.ID,
		StartDate:           start,
		EndDate:             end,
		DaysCount:           days,
		Reason:              req.Reason,
		Status:              leave.StatusPending,
		CurrentApproverRole: &approver,
		IsLOP:               isLOP,
		LOPDays:             lopDays,
	}

	created, err := s.LeaveApplicationRepository.Create(ctx, app)
	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to create leave application: %w", err)
	}
	return created, nil
}

// Approve moves a pending application to approved and debits the balance in
// the same transaction. The notification is fire-and-forget after commit.
func (s *RouterService) Approve(ctx context.Context, p identity.Principal, req leave.DecideRequest) (leave.LeaveApplication, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}

	app, err := s.LeaveApplicationRepository.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	if err := s.authorizeDecision(ctx, p, app); err != nil {
		return leave.LeaveApplication{}, err
	}

	lt, err := s.LeaveTypeRepository.GetByID(ctx, app.LeaveTypeID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	err = s.runTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.LeaveApplicationRepository.Transition(txCtx, app.ID, leave.StatusApproved, p.UserID, req.Remarks); err != nil {
			return err
		}

		// Only the in-balance portion consumes the ledger; LOP days never do.
		debit := app.DaysCount - app.LOPDays
		if debit > 0 {
			balance, err := s.LeaveBalanceRepository.EnsureRow(txCtx, app.EmployeeID, app.LeaveTypeID, app.StartDate.Year(), lt.DefaultEntitlement)
			if err != nil {
				return fmt.Errorf("failed to ensure balance row: %w", err)
			}
			if err := s.LeaveBalanceRepository.IncrementUsed(txCtx, balance.ID, debit); err != nil {
				return fmt.Errorf("failed to debit balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	s.notifyDecision(ctx, p, app, notification.TemplateLeaveApproval, "approved", req.Remarks)

	now := time.Now()
	app.Status = leave.StatusApproved
	app.CurrentApproverRole = nil
	app.DecidedBy = &p.UserID
	app.DecidedAt = &now
	app.Remarks = req.Remarks
	return app, nil
}

// Reject moves a pending application to rejected. The ledger is untouched.
func (s *RouterService) Reject(ctx context.Context, p identity.Principal, req leave.DecideRequest) (leave.LeaveApplication, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}

	app, err := s.LeaveApplicationRepository.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	if err := s.authorizeDecision(ctx, p, app); err != nil {
		return leave.LeaveApplication{}, err
	}

	if err := s.LeaveApplicationRepository.Transition(ctx, app.ID, leave.StatusRejected, p.UserID, req.Remarks); err != nil {
		return leave.LeaveApplication{}, err
	}

	s.notifyDecision(ctx, p, app, notification.TemplateLeaveRejection, "rejected", req.Remarks)

	now := time.Now()
	app.Status = leave.StatusRejected
	app.CurrentApproverRole = nil
	app.DecidedBy = &p.UserID
	app.DecidedAt = &now
	app.Remarks = req.Remarks
	return app, nil
}

// Cancel lets the submitter withdraw their own pending application. No
// notification goes out for a cancellation.
func (s *RouterService) Cancel(ctx context.Context, p identity.Principal, applicationID string) (leave.LeaveApplication, error) {
	app, err := s.LeaveApplicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	if p.Employee == nil || app.EmployeeID != p.Employee.ID {
		return leave.LeaveApplication{}, leave.ErrNotOwnApplication
	}

	if err := s.LeaveApplicationRepository.Transition(ctx, app.ID, leave.StatusCancelled, p.UserID, nil); err != nil {
		return leave.LeaveApplication{}, err
	}

	now := time.Now()
	app.Status = leave.StatusCancelled
	app.CurrentApproverRole = nil
	app.DecidedBy = &p.UserID
	app.DecidedAt = &now
	return app, nil
}

// authorizeDecision checks the actor against the application's routed role.
// The actor must hold the routed role, or outrank it within the approval
// chain (admin over hr and manager, hr over manager). Finance is never part
// of the chain, and nobody decides their own application.
func (s *RouterService) authorizeDecision(ctx context.Context, p identity.Principal, app leave.LeaveApplication) error {
	if app.Status.Terminal() || app.CurrentApproverRole == nil {
		return leave.ErrAlreadyProcessed
	}
	if p.Employee != nil && app.EmployeeID == p.Employee.ID {
		return leave.ErrNotCurrentApprover
	}

	routed := *app.CurrentApproverRole
	switch p.Role {
	case user.RoleAdmin:
		// Admin acts on anything in the chain.
	case user.RoleHR:
		if routed != user.RoleHR && routed != user.RoleManager {
			return leave.ErrNotCurrentApprover
		}
	case user.RoleManager:
		if routed != user.RoleManager {
			return leave.ErrNotCurrentApprover
		}
		// A manager only decides for their own direct reports.
		if err := s.requireDirectReport(ctx, p, app.EmployeeID); err != nil {
			return err
		}
	default:
		return leave.ErrNotCurrentApprover
	}
	return nil
}

func (s *RouterService) requireDirectReport(ctx context.Context, p identity.Principal, employeeID string) error {
	if p.Employee == nil {
		return leave.ErrNotCurrentApprover
	}
	reports, err := s.EmployeeRepository.ListDirectReports(ctx, p.Employee.ID)
	if err != nil {
		return fmt.Errorf("failed to list direct reports: %w", err)
	}
	for _, r := range reports {
		if r.ID == employeeID {
			return nil
		}
	}
	return leave.ErrNotCurrentApprover
}

// notifyDecision dispatches the decision email without blocking or failing
// the committed transition. The payload names the deciding approver; an
// admin without a personnel record appears by role.
func (s *RouterService) notifyDecision(ctx context.Context, p identity.Principal, app leave.LeaveApplication, template string, outcome string, remarks *string) {
	emp, err := s.EmployeeRepository.GetByID(ctx, app.EmployeeID)
	if err != nil || emp.Email == nil {
		slog.Warn("skipping decision notification, no recipient",
			"application_id", app.ID, "employee_id", app.EmployeeID)
		return
	}

	approverName := string(p.Role)
	if p.Employee != nil {
		approverName = p.Employee.DisplayName()
	}

	data := map[string]string{
		"employee_name": emp.DisplayName(),
		"leave_type":    derefOr(app.LeaveTypeName, ""),
		"start_date":    app.StartDate.Format("2006-01-02"),
		"end_date":      app.EndDate.Format("2006-01-02"),
		"days_count":    strconv.FormatFloat(app.DaysCount, 'f', -1, 64),
		"approver_name": approverName,
		"approver_role": string(p.Role),
		"status":        outcome,
		"remarks":       derefOr(remarks, ""),
	}

	sendCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.notifier.Send(sendCtx, notification.EmailRequest{
			To:           *emp.Email,
			TemplateName: template,
			Data:         data,
		}); err != nil {
			slog.Warn("failed to send decision notification",
				"application_id", app.ID, "template", template, "error", err)
		}
	}()
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
