package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
)

func newCatalogService(typeRepo *fakeLeaveTypeRepo, appRepo *fakeApplicationRepo, empRepo *fakeEmployeeRepo) *Service {
	return NewService(typeRepo, appRepo, NewVisibilityService(empRepo))
}

func TestService_CreateType(t *testing.T) {
	typeRepo := newFakeLeaveTypeRepo(annualLeaveType())
	svc := newCatalogService(typeRepo, newFakeApplicationRepo(), newFakeEmployeeRepo())
	ctx := context.Background()

	created, err := svc.CreateType(ctx, leave.CreateLeaveTypeRequest{
		Code:               "SL",
		Name:               "Sick Leave",
		Category:           "wellness",
		DefaultEntitlement: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, leave.CategoryWellness, created.Category)

	// Codes are unique for the catalog's life.
	_, err = svc.CreateType(ctx, leave.CreateLeaveTypeRequest{
		Code:               "AL",
		Name:               "Another Annual",
		Category:           "regular",
		DefaultEntitlement: 5,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeCodeExists)
}

func TestService_UpdateType_PatchesOnlyGivenFields(t *testing.T) {
	typeRepo := newFakeLeaveTypeRepo(annualLeaveType())
	svc := newCatalogService(typeRepo, newFakeApplicationRepo(), newFakeEmployeeRepo())

	entitlement := 15.0
	enabled := false
	updated, err := svc.UpdateType(context.Background(), leave.UpdateLeaveTypeRequest{
		ID:                 "lt-annual",
		DefaultEntitlement: &entitlement,
		IsEnabled:          &enabled,
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.DefaultEntitlement)
	assert.False(t, updated.IsEnabled)
	// Untouched fields survive the patch.
	assert.Equal(t, "Annual Leave", updated.Name)
	assert.Equal(t, "AL", updated.Code)
}

func TestService_DisableType(t *testing.T) {
	typeRepo := newFakeLeaveTypeRepo(annualLeaveType())
	svc := newCatalogService(typeRepo, newFakeApplicationRepo(), newFakeEmployeeRepo())
	ctx := context.Background()

	require.NoError(t, svc.DisableType(ctx, "lt-annual"))

	// The row stays in the catalog, just no longer offered.
	lt, err := typeRepo.GetByID(ctx, "lt-annual")
	require.NoError(t, err)
	assert.False(t, lt.IsEnabled)

	visible, err := svc.ListTypes(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, visible)

	assert.ErrorIs(t, svc.DisableType(ctx, "lt-missing"), leave.ErrLeaveTypeNotFound)
}

func TestService_ListMine_UnprovisionedIsEmpty(t *testing.T) {
	svc := newCatalogService(newFakeLeaveTypeRepo(), newFakeApplicationRepo(), newFakeEmployeeRepo())

	apps, err := svc.ListMine(context.Background(), testPrincipal(user.RoleTeamMember, nil), 0)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestService_ListPending_ManagerSeesOnlyTeamQueue(t *testing.T) {
	manager := testEmployee("mgr-1", nil)
	report := testEmployee("emp-1", strPtr("mgr-1"))
	stranger := testEmployee("emp-9", nil)
	empRepo := newFakeEmployeeRepo(*manager, *report, *stranger)

	appRepo := newFakeApplicationRepo(
		pendingApplication("app-1", "emp-1", user.RoleManager),
		pendingApplication("app-2", "emp-9", user.RoleManager),
		pendingApplication("app-3", "emp-1", user.RoleHR),
	)
	svc := newCatalogService(newFakeLeaveTypeRepo(), appRepo, empRepo)

	apps, err := svc.ListPending(context.Background(), testPrincipal(user.RoleManager, manager), 0)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "app-1", apps[0].ID)
}

func TestService_ListPending_HRSeesManagerRoutedOnly(t *testing.T) {
	hr := testEmployee("hr-1", nil)
	empRepo := newFakeEmployeeRepo(*hr, *testEmployee("emp-1", nil), *testEmployee("mgr-1", nil))

	appRepo := newFakeApplicationRepo(
		pendingApplication("app-1", "emp-1", user.RoleManager),
		pendingApplication("app-2", "mgr-1", user.RoleHR),
		pendingApplication("app-3", "hr-1", user.RoleManager),
	)
	svc := newCatalogService(newFakeLeaveTypeRepo(), appRepo, empRepo)

	apps, err := svc.ListPending(context.Background(), testPrincipal(user.RoleHR, hr), 0)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "app-1", apps[0].ID)
}

func TestService_ListPending_FinanceHasNoQueue(t *testing.T) {
	appRepo := newFakeApplicationRepo(pendingApplication("app-1", "emp-1", user.RoleManager))
	svc := newCatalogService(newFakeLeaveTypeRepo(), appRepo, newFakeEmployeeRepo())

	apps, err := svc.ListPending(context.Background(), testPrincipal(user.RoleFinance, testEmployee("fin-1", nil)), 0)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestService_ListHistory_Paginates(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	for i := 0; i < 5; i++ {
		_, err := appRepo.Create(context.Background(), pendingApplication("", "emp-1", user.RoleManager))
		require.NoError(t, err)
	}
	svc := newCatalogService(newFakeLeaveTypeRepo(), appRepo, newFakeEmployeeRepo(*testEmployee("emp-1", nil)))

	p := testPrincipal(user.RoleTeamMember, testEmployee("emp-1", nil))
	apps, total, err := svc.ListHistory(context.Background(), p, leave.HistoryFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, apps, 2)
}

func TestService_GetApplication_ScopeHidesForeignRows(t *testing.T) {
	owner := testEmployee("emp-1", nil)
	other := testEmployee("emp-2", nil)
	empRepo := newFakeEmployeeRepo(*owner, *other)
	appRepo := newFakeApplicationRepo(pendingApplication("app-1", "emp-1", user.RoleManager))
	svc := newCatalogService(newFakeLeaveTypeRepo(), appRepo, empRepo)
	ctx := context.Background()

	// The owner and admin see the row.
	app, err := svc.GetApplication(ctx, testPrincipal(user.RoleTeamMember, owner), "app-1")
	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID)

	_, err = svc.GetApplication(ctx, testPrincipal(user.RoleAdmin, nil), "app-1")
	assert.NoError(t, err)

	// A hidden row reads as not found, not as forbidden.
	_, err = svc.GetApplication(ctx, testPrincipal(user.RoleTeamMember, other), "app-1")
	assert.ErrorIs(t, err, leave.ErrApplicationNotFound)
}
