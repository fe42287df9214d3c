package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
)

func TestVisibilityService_ScopeForHistory(t *testing.T) {
	manager := testEmployee("mgr-1", nil)
	reportA := testEmployee("emp-1", strPtr("mgr-1"))
	reportB := testEmployee("emp-2", strPtr("mgr-1"))
	hr := testEmployee("hr-1", nil)
	svc := NewVisibilityService(newFakeEmployeeRepo(*manager, *reportA, *reportB, *hr))
	ctx := context.Background()

	t.Run("admin sees everything", func(t *testing.T) {
		scope, visible, err := svc.ScopeForHistory(ctx, testPrincipal(user.RoleAdmin, nil))
		require.NoError(t, err)
		assert.True(t, visible)
		assert.Nil(t, scope.EmployeeIDs)
		assert.Nil(t, scope.ExcludeEmployeeID)
	})

	t.Run("hr sees everyone but themselves", func(t *testing.T) {
		scope, visible, err := svc.ScopeForHistory(ctx, testPrincipal(user.RoleHR, hr))
		require.NoError(t, err)
		assert.True(t, visible)
		assert.Nil(t, scope.EmployeeIDs)
		require.NotNil(t, scope.ExcludeEmployeeID)
		assert.Equal(t, "hr-1", *scope.ExcludeEmployeeID)
	})

	t.Run("manager sees direct reports", func(t *testing.T) {
		scope, visible, err := svc.ScopeForHistory(ctx, testPrincipal(user.RoleManager, manager))
		require.NoError(t, err)
		assert.True(t, visible)
		require.NotNil(t, scope.EmployeeIDs)
		assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, *scope.EmployeeIDs)
	})

	t.Run("manager without reports sees nothing", func(t *testing.T) {
		lonely := testEmployee("mgr-2", nil)
		svc := NewVisibilityService(newFakeEmployeeRepo(*lonely))
		_, visible, err := svc.ScopeForHistory(ctx, testPrincipal(user.RoleManager, lonely))
		require.NoError(t, err)
		assert.False(t, visible)
	})

	t.Run("team member sees only their own rows", func(t *testing.T) {
		scope, visible, err := svc.ScopeForHistory(ctx, testPrincipal(user.RoleTeamMember, reportA))
		require.NoError(t, err)
		assert.True(t, visible)
		require.NotNil(t, scope.EmployeeIDs)
		assert.Equal(t, []string{"emp-1"}, *scope.EmployeeIDs)
	})

	t.Run("unprovisioned principal sees nothing", func(t *testing.T) {
		_, visible, err := svc.ScopeForHistory(ctx, testPrincipal(user.RoleTeamMember, nil))
		require.NoError(t, err)
		assert.False(t, visible)
	})
}

func TestVisibilityService_ScopeForPending(t *testing.T) {
	manager := testEmployee("mgr-1", nil)
	report := testEmployee("emp-1", strPtr("mgr-1"))
	hr := testEmployee("hr-1", nil)
	svc := NewVisibilityService(newFakeEmployeeRepo(*manager, *report, *hr))
	ctx := context.Background()

	t.Run("admin queue spans both routed roles", func(t *testing.T) {
		scope, visible, err := svc.ScopeForPending(ctx, testPrincipal(user.RoleAdmin, nil))
		require.NoError(t, err)
		assert.True(t, visible)
		assert.ElementsMatch(t, []user.Role{user.RoleHR, user.RoleManager}, scope.ApproverRoles)
	})

	t.Run("hr queue shows manager-routed rows minus their own", func(t *testing.T) {
		scope, visible, err := svc.ScopeForPending(ctx, testPrincipal(user.RoleHR, hr))
		require.NoError(t, err)
		assert.True(t, visible)
		assert.Equal(t, []user.Role{user.RoleManager}, scope.ApproverRoles)
		require.NotNil(t, scope.ExcludeEmployeeID)
		assert.Equal(t, "hr-1", *scope.ExcludeEmployeeID)
	})

	t.Run("manager queue is team plus routed role", func(t *testing.T) {
		scope, visible, err := svc.ScopeForPending(ctx, testPrincipal(user.RoleManager, manager))
		require.NoError(t, err)
		assert.True(t, visible)
		assert.Equal(t, []user.Role{user.RoleManager}, scope.ApproverRoles)
		require.NotNil(t, scope.EmployeeIDs)
		assert.Equal(t, []string{"emp-1"}, *scope.EmployeeIDs)
	})

	t.Run("finance has no queue", func(t *testing.T) {
		_, visible, err := svc.ScopeForPending(ctx, testPrincipal(user.RoleFinance, testEmployee("fin-1", nil)))
		require.NoError(t, err)
		assert.False(t, visible)
	})

	t.Run("team member has no queue", func(t *testing.T) {
		_, visible, err := svc.ScopeForPending(ctx, testPrincipal(user.RoleTeamMember, report))
		require.NoError(t, err)
		assert.False(t, visible)
	})
}
