package leave

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/domain/notification"
)

// In-memory doubles for the repository interfaces. They mimic the semantics
// the SQL layer guarantees, most importantly the conditional Transition.

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func newFakeLeaveTypeRepo(types ...leave.LeaveType) *fakeLeaveTypeRepo {
	r := &fakeLeaveTypeRepo{types: make(map[string]leave.LeaveType)}
	for _, lt := range types {
		r.types[lt.ID] = lt
	}
	return r
}

func (r *fakeLeaveTypeRepo) Create(_ context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	if lt.ID == "" {
		lt.ID = fmt.Sprintf("lt-%d", len(r.types)+1)
	}
	r.types[lt.ID] = lt
	return lt, nil
}

func (r *fakeLeaveTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	lt, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *fakeLeaveTypeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, lt := range r.types {
		if lt.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLeaveTypeRepo) List(_ context.Context, enabledOnly bool) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range r.types {
		if enabledOnly && !lt.IsEnabled {
			continue
		}
		out = append(out, lt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeLeaveTypeRepo) Update(_ context.Context, lt leave.LeaveType) error {
	if _, ok := r.types[lt.ID]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	r.types[lt.ID] = lt
	return nil
}

func (r *fakeLeaveTypeRepo) SetEnabled(_ context.Context, id string, enabled bool) error {
	lt, ok := r.types[id]
	if !ok {
		return leave.ErrLeaveTypeNotFound
	}
	lt.IsEnabled = enabled
	r.types[id] = lt
	return nil
}

type fakeApplicationRepo struct {
	apps map[string]leave.LeaveApplication
	seq  int
}

func newFakeApplicationRepo(apps ...leave.LeaveApplication) *fakeApplicationRepo {
	r := &fakeApplicationRepo{apps: make(map[string]leave.LeaveApplication)}
	for _, a := range apps {
		r.apps[a.ID] = a
	}
	return r
}

func (r *fakeApplicationRepo) Create(_ context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	r.seq++
	app.ID = fmt.Sprintf("app-%d", r.seq)
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	r.apps[app.ID] = app
	return app, nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (leave.LeaveApplication, error) {
	app, ok := r.apps[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	return app, nil
}

func (r *fakeApplicationRepo) ListByEmployee(_ context.Context, employeeID string, limit int) ([]leave.LeaveApplication, error) {
	var out []leave.LeaveApplication
	for _, a := range r.apps {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListPending(_ context.Context, scope leave.ApplicationScope, limit int) ([]leave.LeaveApplication, error) {
	var out []leave.LeaveApplication
	for _, a := range r.apps {
		if a.Status != leave.StatusPending || !inScope(scope, a) {
			continue
		}
		if len(scope.ApproverRoles) > 0 {
			matched := false
			for _, role := range scope.ApproverRoles {
				if a.CurrentApproverRole != nil && *a.CurrentApproverRole == role {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListHistory(_ context.Context, scope leave.ApplicationScope, filter leave.HistoryFilter) ([]leave.LeaveApplication, int64, error) {
	var out []leave.LeaveApplication
	for _, a := range r.apps {
		if !inScope(scope, a) {
			continue
		}
		if filter.Year != nil && a.StartDate.Year() != *filter.Year {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(out) {
		return []leave.LeaveApplication{}, total, nil
	}
	end := start + filter.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *fakeApplicationRepo) CountPendingByEmployee(_ context.Context, employeeID string) (int64, error) {
	var n int64
	for _, a := range r.apps {
		if a.EmployeeID == employeeID && a.Status == leave.StatusPending {
			n++
		}
	}
	return n, nil
}

func (r *fakeApplicationRepo) SumApprovedLOPDays(_ context.Context, employeeID string, year int) (float64, error) {
	var sum float64
	for _, a := range r.apps {
		if a.EmployeeID == employeeID && a.Status == leave.StatusApproved && a.IsLOP && a.StartDate.Year() == year {
			sum += a.LOPDays
		}
	}
	return sum, nil
}

func (r *fakeApplicationRepo) CountOnLeave(_ context.Context, day time.Time) (int64, error) {
	seen := make(map[string]bool)
	for _, a := range r.apps {
		if a.Status == leave.StatusApproved && !a.StartDate.After(day) && !a.EndDate.Before(day) {
			seen[a.EmployeeID] = true
		}
	}
	return int64(len(seen)), nil
}

func (r *fakeApplicationRepo) Transition(_ context.Context, id string, to leave.ApplicationStatus, decidedBy string, remarks *string) error {
	app, ok := r.apps[id]
	if !ok {
		return leave.ErrApplicationNotFound
	}
	if app.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}
	now := time.Now()
	app.Status = to
	app.CurrentApproverRole = nil
	app.DecidedBy = &decidedBy
	app.DecidedAt = &now
	app.Remarks = remarks
	app.UpdatedAt = now
	r.apps[id] = app
	return nil
}

func inScope(scope leave.ApplicationScope, a leave.LeaveApplication) bool {
	if scope.ExcludeEmployeeID != nil && a.EmployeeID == *scope.ExcludeEmployeeID {
		return false
	}
	if scope.EmployeeIDs != nil {
		for _, id := range *scope.EmployeeIDs {
			if id == a.EmployeeID {
				return true
			}
		}
		return false
	}
	return true
}

type fakeBalanceRepo struct {
	rows map[string]leave.LeaveBalance
	seq  int
}

func newFakeBalanceRepo(rows ...leave.LeaveBalance) *fakeBalanceRepo {
	r := &fakeBalanceRepo{rows: make(map[string]leave.LeaveBalance)}
	for _, b := range rows {
		r.rows[b.ID] = b
	}
	return r
}

func (r *fakeBalanceRepo) GetByEmployeeYear(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, b := range r.rows {
		if b.EmployeeID == employeeID && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBalanceRepo) GetByEmployeeTypeYear(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	for _, b := range r.rows {
		if b.EmployeeID == employeeID && b.LeaveTypeID == leaveTypeID && b.Year == year {
			return b, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (r *fakeBalanceRepo) EnsureRow(ctx context.Context, employeeID, leaveTypeID string, year int, entitledDays float64) (leave.LeaveBalance, error) {
	if b, err := r.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year); err == nil {
		return b, nil
	}
	r.seq++
	b := leave.LeaveBalance{
		ID:           fmt.Sprintf("bal-%d", r.seq),
		EmployeeID:   employeeID,
		LeaveTypeID:  leaveTypeID,
		Year:         year,
		EntitledDays: entitledDays,
	}
	r.rows[b.ID] = b
	return b, nil
}

func (r *fakeBalanceRepo) AddAdjustment(_ context.Context, id string, days float64) error {
	b, ok := r.rows[id]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.AdjustedDays += days
	r.rows[id] = b
	return nil
}

func (r *fakeBalanceRepo) IncrementUsed(_ context.Context, id string, days float64) error {
	b, ok := r.rows[id]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.UsedDays += days
	r.rows[id] = b
	return nil
}

type fakeEmployeeRepo struct {
	emps    map[string]employee.Employee
	reports map[string][]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{
		emps:    make(map[string]employee.Employee),
		reports: make(map[string][]employee.Employee),
	}
	for _, e := range emps {
		r.emps[e.ID] = e
		if e.ReportingManagerID != nil {
			r.reports[*e.ReportingManagerID] = append(r.reports[*e.ReportingManagerID], e)
		}
	}
	return r
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if e.ID == "" {
		e.ID = fmt.Sprintf("emp-%d", len(r.emps)+1)
	}
	r.emps[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.emps[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, e := range r.emps {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByEmployeeCode(_ context.Context, code string) (employee.Employee, error) {
	for _, e := range r.emps {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, err := r.GetByEmployeeCode(context.Background(), code)
	return err == nil, nil
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.emps {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListDirectReports(_ context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.reports[managerID] {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, id string, _ employee.UpdateEmployeeRequest) error {
	if _, ok := r.emps[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *fakeEmployeeRepo) SetActive(_ context.Context, id string, active bool) error {
	e, ok := r.emps[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsActive = active
	r.emps[id] = e
	return nil
}

// fakeNotifier records sends; decision emails go out on a goroutine so the
// recorder is mutex-guarded.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification.EmailRequest
}

func (n *fakeNotifier) Send(_ context.Context, req notification.EmailRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, req)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *fakeNotifier) last() notification.EmailRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}
