package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
	leaveservice "github.com/thinkforge/hrms-backend-go/internal/service/leave"
)

type fakeCounterRepo struct {
	employees   int64
	pending     int64
	departments int64
}

func (r *fakeCounterRepo) CountActiveEmployees(_ context.Context) (int64, error) {
	return r.employees, nil
}

func (r *fakeCounterRepo) CountPendingApplications(_ context.Context) (int64, error) {
	return r.pending, nil
}

func (r *fakeCounterRepo) CountDepartments(_ context.Context) (int64, error) {
	return r.departments, nil
}

// fakeAppRepo serves the aggregate queries the dashboard relies on.
type fakeAppRepo struct {
	apps []leave.LeaveApplication
}

func (r *fakeAppRepo) Create(_ context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	r.apps = append(r.apps, app)
	return app, nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, _ string) (leave.LeaveApplication, error) {
	return leave.LeaveApplication{}, leave.ErrApplicationNotFound
}

func (r *fakeAppRepo) ListByEmployee(_ context.Context, employeeID string, limit int) ([]leave.LeaveApplication, error) {
	var out []leave.LeaveApplication
	for _, a := range r.apps {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAppRepo) ListPending(_ context.Context, _ leave.ApplicationScope, _ int) ([]leave.LeaveApplication, error) {
	return nil, nil
}

func (r *fakeAppRepo) ListHistory(_ context.Context, _ leave.ApplicationScope, _ leave.HistoryFilter) ([]leave.LeaveApplication, int64, error) {
	return nil, 0, nil
}

func (r *fakeAppRepo) CountPendingByEmployee(_ context.Context, employeeID string) (int64, error) {
	var n int64
	for _, a := range r.apps {
		if a.EmployeeID == employeeID && a.Status == leave.StatusPending {
			n++
		}
	}
	return n, nil
}

func (r *fakeAppRepo) SumApprovedLOPDays(_ context.Context, employeeID string, year int) (float64, error) {
	var sum float64
	for _, a := range r.apps {
		if a.EmployeeID == employeeID && a.Status == leave.StatusApproved && a.IsLOP && a.StartDate.Year() == year {
			sum += a.LOPDays
		}
	}
	return sum, nil
}

func (r *fakeAppRepo) CountOnLeave(_ context.Context, day time.Time) (int64, error) {
	seen := make(map[string]bool)
	for _, a := range r.apps {
		if a.Status == leave.StatusApproved && !a.StartDate.After(day) && !a.EndDate.Before(day) {
			seen[a.EmployeeID] = true
		}
	}
	return int64(len(seen)), nil
}

func (r *fakeAppRepo) Transition(_ context.Context, _ string, _ leave.ApplicationStatus, _ string, _ *string) error {
	return nil
}

type fakeTypeRepo struct {
	types []leave.LeaveType
}

func (r *fakeTypeRepo) Create(_ context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	return lt, nil
}

func (r *fakeTypeRepo) GetByID(_ context.Context, _ string) (leave.LeaveType, error) {
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (r *fakeTypeRepo) ExistsByCode(_ context.Context, _ string) (bool, error) { return false, nil }

func (r *fakeTypeRepo) List(_ context.Context, _ bool) ([]leave.LeaveType, error) {
	return r.types, nil
}

func (r *fakeTypeRepo) Update(_ context.Context, _ leave.LeaveType) error { return nil }

func (r *fakeTypeRepo) SetEnabled(_ context.Context, _ string, _ bool) error { return nil }

type fakeBalanceRepo struct {
	rows []leave.LeaveBalance
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

func (r *fakeBalanceRepo) GetByEmployeeTypeYear(_ context.Context, _, _ string, _ int) (leave.LeaveBalance, error) {
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (r *fakeBalanceRepo) EnsureRow(_ context.Context, _, _ string, _ int, _ float64) (leave.LeaveBalance, error) {
	return leave.LeaveBalance{}, nil
}

func (r *fakeBalanceRepo) AddAdjustment(_ context.Context, _ string, _ float64) error { return nil }

func (r *fakeBalanceRepo) IncrementUsed(_ context.Context, _ string, _ float64) error { return nil }

type fakeEmployeeRepo struct {
	emps map[string]employee.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.emps[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByEmployeeCode(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ExistsByCode(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) ListDirectReports(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, _ string, _ employee.UpdateEmployeeRequest) error {
	return nil
}

func (r *fakeEmployeeRepo) SetActive(_ context.Context, _ string, _ bool) error { return nil }

func newTestDashboard(counters *fakeCounterRepo, appRepo *fakeAppRepo, typeRepo *fakeTypeRepo, balRepo *fakeBalanceRepo, empRepo *fakeEmployeeRepo) *DashboardServiceImpl {
	balanceSvc := leaveservice.NewBalanceService(typeRepo, balRepo, empRepo)
	leaveSvc := leaveservice.NewService(typeRepo, appRepo, leaveservice.NewVisibilityService(empRepo))
	return NewDashboardService(counters, appRepo, balanceSvc, leaveSvc)
}

func TestDashboardService_SelfStats(t *testing.T) {
	year := time.Now().Year()
	emp := employee.Employee{ID: "emp-1", EmployeeCode: "TF-0001", IsActive: true}

	typeRepo := &fakeTypeRepo{types: []leave.LeaveType{
		{ID: "lt-annual", Code: "AL", Name: "Annual Leave", DefaultEntitlement: 12, IsEnabled: true},
		{ID: "lt-sick", Code: "SL", Name: "Sick Leave", DefaultEntitlement: 10, IsEnabled: true},
	}}
	balRepo := &fakeBalanceRepo{rows: []leave.LeaveBalance{
		{ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "lt-annual", Year: year, EntitledDays: 12, UsedDays: 4.5},
	}}
	appRepo := &fakeAppRepo{apps: []leave.LeaveApplication{
		{EmployeeID: "emp-1", Status: leave.StatusPending},
		{EmployeeID: "emp-1", Status: leave.StatusApproved, IsLOP: true, LOPDays: 2,
			StartDate: time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(year, 6, 3, 0, 0, 0, 0, time.UTC)},
	}}
	svc := newTestDashboard(&fakeCounterRepo{}, appRepo, typeRepo, balRepo, &fakeEmployeeRepo{emps: map[string]employee.Employee{"emp-1": emp}})

	p := identity.Principal{UserID: "user-1", Role: user.RoleTeamMember, Employee: &emp, Provisioned: true}
	stats, err := svc.SelfStats(context.Background(), p)
	require.NoError(t, err)

	// 7.5 available (annual) + 10 (sick default) rounds to 18.
	assert.Equal(t, 18, stats.AvailableDays)
	assert.Equal(t, 5, stats.UsedDays)
	assert.Equal(t, 2, stats.LOPDays)
	assert.Equal(t, int64(1), stats.PendingRequests)
	assert.Len(t, stats.Balances, 2)
}

func TestDashboardService_SelfStats_Unprovisioned(t *testing.T) {
	svc := newTestDashboard(&fakeCounterRepo{}, &fakeAppRepo{}, &fakeTypeRepo{}, &fakeBalanceRepo{}, &fakeEmployeeRepo{})

	p := identity.Principal{UserID: "user-1", Role: user.RoleTeamMember}
	stats, err := svc.SelfStats(context.Background(), p)
	require.NoError(t, err)
	assert.Zero(t, stats.AvailableDays)
	assert.Zero(t, stats.UsedDays)
	assert.Empty(t, stats.Balances)
}

func TestDashboardService_OrgSnapshot(t *testing.T) {
	year := time.Now().Year()
	appRepo := &fakeAppRepo{apps: []leave.LeaveApplication{
		{EmployeeID: "emp-1", Status: leave.StatusApproved,
			StartDate: time.Date(year-1, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	svc := newTestDashboard(&fakeCounterRepo{employees: 40, pending: 6, departments: 5}, appRepo, &fakeTypeRepo{}, &fakeBalanceRepo{}, &fakeEmployeeRepo{})

	snap, err := svc.OrgSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), snap.Headcount)
	assert.Equal(t, int64(1), snap.OnLeaveToday)
	assert.Equal(t, int64(6), snap.PendingRequests)
	assert.Equal(t, int64(5), snap.Departments)
}
