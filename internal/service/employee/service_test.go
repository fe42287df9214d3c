package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/notification"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
)

type fakeRoleRepo struct {
	adminOrHR map[string]bool
}

func (r *fakeRoleRepo) Assign(_ context.Context, _ string, _ user.Role) error { return nil }

func (r *fakeRoleRepo) GetRolesByUserID(_ context.Context, _ string) ([]user.Role, error) {
	return nil, nil
}

func (r *fakeRoleRepo) IsAdminOrHR(_ context.Context, userID string) (bool, error) {
	return r.adminOrHR[userID], nil
}

type fakeEmployeeRepo struct {
	emps    map[string]employee.Employee
	updated map[string]employee.UpdateEmployeeRequest
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{
		emps:    make(map[string]employee.Employee),
		updated: make(map[string]employee.UpdateEmployeeRequest),
	}
	for _, e := range emps {
		r.emps[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
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

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
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
	for _, e := range r.emps {
		if e.EmployeeCode == code {
			return true, nil
		}
	}
	return false, nil
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

func (r *fakeEmployeeRepo) ListDirectReports(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, id string, req employee.UpdateEmployeeRequest) error {
	e, ok := r.emps[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	r.updated[id] = req
	if req.ReportingManagerID != nil {
		e.ReportingManagerID = req.ReportingManagerID
	}
	r.emps[id] = e
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

type nopNotifier struct{}

func (nopNotifier) Send(_ context.Context, _ notification.EmailRequest) error { return nil }

func chainEmployee(id string, managerID *string) employee.Employee {
	return employee.Employee{ID: id, EmployeeCode: "TF-" + id, ReportingManagerID: managerID, IsActive: true}
}

func newTestService(empRepo *fakeEmployeeRepo, roles *fakeRoleRepo) *EmployeeServiceImpl {
	return NewEmployeeService(nil, nil, roles, empRepo, nil, nopNotifier{})
}

func TestEmployeeService_Provision_RequiresAdminOrHR(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo(), &fakeRoleRepo{adminOrHR: map[string]bool{}})

	_, err := svc.Provision(context.Background(), "user-member", employee.ProvisionEmployeeRequest{
		FirstName:      "Asha",
		LastName:       "Rao",
		Email:          "asha@example.com",
		EmployeeCode:   "TF-0042",
		EmploymentType: "full_time",
		DateOfJoining:  "2026-01-05",
	})
	assert.ErrorIs(t, err, user.ErrAdminOrHRRequired)
}

func TestEmployeeService_Provision_DuplicateCode(t *testing.T) {
	existing := chainEmployee("emp-1", nil)
	existing.EmployeeCode = "TF-0042"
	svc := newTestService(newFakeEmployeeRepo(existing), &fakeRoleRepo{adminOrHR: map[string]bool{"user-hr": true}})

	_, err := svc.Provision(context.Background(), "user-hr", employee.ProvisionEmployeeRequest{
		FirstName:      "Asha",
		LastName:       "Rao",
		Email:          "asha@example.com",
		EmployeeCode:   "TF-0042",
		EmploymentType: "full_time",
		DateOfJoining:  "2026-01-05",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestEmployeeService_Provision_ManagerChecks(t *testing.T) {
	inactive := chainEmployee("mgr-gone", nil)
	inactive.IsActive = false
	empRepo := newFakeEmployeeRepo(inactive)
	svc := newTestService(empRepo, &fakeRoleRepo{adminOrHR: map[string]bool{"user-hr": true}})

	base := employee.ProvisionEmployeeRequest{
		FirstName:      "Asha",
		LastName:       "Rao",
		Email:          "asha@example.com",
		EmployeeCode:   "TF-0042",
		EmploymentType: "full_time",
		DateOfJoining:  "2026-01-05",
	}

	missing := "ghost"
	req := base
	req.ReportingManagerID = &missing
	_, err := svc.Provision(context.Background(), "user-hr", req)
	assert.ErrorIs(t, err, employee.ErrManagerNotFound)

	gone := "mgr-gone"
	req = base
	req.ReportingManagerID = &gone
	_, err = svc.Provision(context.Background(), "user-hr", req)
	assert.ErrorIs(t, err, employee.ErrManagerInactive)
}

func TestEmployeeService_Update_SelfManager(t *testing.T) {
	empRepo := newFakeEmployeeRepo(chainEmployee("emp-1", nil))
	svc := newTestService(empRepo, &fakeRoleRepo{})

	self := "emp-1"
	_, err := svc.Update(context.Background(), "emp-1", employee.UpdateEmployeeRequest{ReportingManagerID: &self})
	assert.ErrorIs(t, err, employee.ErrSelfManager)
}

func TestEmployeeService_Update_ManagerCycle(t *testing.T) {
	// Chain: c reports to b, b reports to a. Making a report to c would close
	// the loop a -> c -> b -> a.
	a := chainEmployee("a", nil)
	b := chainEmployee("b", strPtr("a"))
	c := chainEmployee("c", strPtr("b"))
	empRepo := newFakeEmployeeRepo(a, b, c)
	svc := newTestService(empRepo, &fakeRoleRepo{})

	_, err := svc.Update(context.Background(), "a", employee.UpdateEmployeeRequest{ReportingManagerID: strPtr("c")})
	assert.ErrorIs(t, err, employee.ErrManagerCycle)

	// Direct two-node cycle.
	_, err = svc.Update(context.Background(), "b", employee.UpdateEmployeeRequest{ReportingManagerID: strPtr("c")})
	assert.ErrorIs(t, err, employee.ErrManagerCycle)
}

func TestEmployeeService_Update_ValidManagerChange(t *testing.T) {
	a := chainEmployee("a", nil)
	b := chainEmployee("b", strPtr("a"))
	d := chainEmployee("d", nil)
	empRepo := newFakeEmployeeRepo(a, b, d)
	svc := newTestService(empRepo, &fakeRoleRepo{})

	updated, err := svc.Update(context.Background(), "d", employee.UpdateEmployeeRequest{ReportingManagerID: strPtr("b")})
	require.NoError(t, err)
	require.NotNil(t, updated.ReportingManagerID)
	assert.Equal(t, "b", *updated.ReportingManagerID)
}

func TestEmployeeService_Deactivate(t *testing.T) {
	empRepo := newFakeEmployeeRepo(chainEmployee("emp-1", nil))
	svc := newTestService(empRepo, &fakeRoleRepo{})
	ctx := context.Background()

	require.NoError(t, svc.Deactivate(ctx, "emp-1"))

	stored, err := empRepo.GetByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// Second deactivation is a conflict, not a no-op.
	assert.ErrorIs(t, svc.Deactivate(ctx, "emp-1"), employee.ErrAlreadyInactive)

	assert.ErrorIs(t, svc.Deactivate(ctx, "ghost"), employee.ErrEmployeeNotFound)
}

func strPtr(s string) *string { return &s }
