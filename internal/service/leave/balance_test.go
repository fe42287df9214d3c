package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
)

func TestLeaveBalance_Available(t *testing.T) {
	b := leave.LeaveBalance{EntitledDays: 12, CarriedForwardDays: 3, AdjustedDays: -1, UsedDays: 5}
	assert.Equal(t, 9.0, b.Available())
	assert.Equal(t, 14.0, b.Total())

	// Overdrawn ledgers clamp at zero instead of going negative.
	overdrawn := leave.LeaveBalance{EntitledDays: 2, UsedDays: 6}
	assert.Equal(t, 0.0, overdrawn.Available())
}

func TestBalanceService_GetBalances(t *testing.T) {
	female := employee.GenderFemale
	emp := testEmployee("emp-1", nil)
	emp.Gender = &female

	maternity := annualLeaveType()
	maternity.ID = "lt-maternity"
	maternity.Code = "ML"
	maternity.Name = "Maternity Leave"
	maternity.GenderRestriction = strPtr("female")
	maternity.DefaultEntitlement = 90

	paternity := annualLeaveType()
	paternity.ID = "lt-paternity"
	paternity.Code = "PL"
	paternity.Name = "Paternity Leave"
	paternity.GenderRestriction = strPtr("male")

	typeRepo := newFakeLeaveTypeRepo(annualLeaveType(), maternity, paternity)
	balRepo := newFakeBalanceRepo(leave.LeaveBalance{
		ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "lt-annual", Year: 2026,
		EntitledDays: 12, UsedDays: 4,
	})
	svc := NewBalanceService(typeRepo, balRepo, newFakeEmployeeRepo(*emp))

	balances, err := svc.GetBalances(context.Background(), "emp-1", 2026)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	byType := make(map[string]leave.BalanceResponse, len(balances))
	for _, b := range balances {
		byType[b.LeaveTypeID] = b
	}

	annual := byType["lt-annual"]
	assert.Equal(t, 8.0, annual.Available)
	assert.Equal(t, 4.0, annual.Used)

	// No stored row: the default entitlement stands in.
	mat := byType["lt-maternity"]
	assert.Equal(t, 90.0, mat.Available)
	assert.Equal(t, 0.0, mat.Used)

	// The male-restricted type is filtered out entirely.
	_, ok := byType["lt-paternity"]
	assert.False(t, ok)
}

func TestBalanceService_GetBalances_NoGenderIsPermissive(t *testing.T) {
	emp := testEmployee("emp-1", nil)

	maternity := annualLeaveType()
	maternity.ID = "lt-maternity"
	maternity.Code = "ML"
	maternity.Name = "Maternity Leave"
	maternity.GenderRestriction = strPtr("female")

	svc := NewBalanceService(newFakeLeaveTypeRepo(maternity), newFakeBalanceRepo(), newFakeEmployeeRepo(*emp))

	balances, err := svc.GetBalances(context.Background(), "emp-1", 2026)
	require.NoError(t, err)
	assert.Len(t, balances, 1)
}

func TestBalanceService_AvailableFor(t *testing.T) {
	lt := annualLeaveType()
	balRepo := newFakeBalanceRepo(leave.LeaveBalance{
		ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: lt.ID, Year: 2026,
		EntitledDays: 12, CarriedForwardDays: 2, UsedDays: 5,
	})
	svc := NewBalanceService(newFakeLeaveTypeRepo(lt), balRepo, newFakeEmployeeRepo())

	available, err := svc.AvailableFor(context.Background(), "emp-1", lt, 2026)
	require.NoError(t, err)
	assert.Equal(t, 9.0, available)

	// No row yet: fall back to the type's default entitlement.
	available, err = svc.AvailableFor(context.Background(), "emp-2", lt, 2026)
	require.NoError(t, err)
	assert.Equal(t, 12.0, available)
}

func TestBalanceService_Adjust(t *testing.T) {
	lt := annualLeaveType()
	emp := testEmployee("emp-1", nil)
	balRepo := newFakeBalanceRepo()
	svc := NewBalanceService(newFakeLeaveTypeRepo(lt), balRepo, newFakeEmployeeRepo(*emp))

	b, err := svc.Adjust(context.Background(), leave.AdjustBalanceRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: lt.ID,
		Year:        2026,
		Days:        -2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, -2.5, b.AdjustedDays)
	assert.Equal(t, 12.0, b.EntitledDays)
	assert.Equal(t, 9.5, b.Available())

	// A second adjustment accumulates on the same row.
	b, err = svc.Adjust(context.Background(), leave.AdjustBalanceRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: lt.ID,
		Year:        2026,
		Days:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, b.AdjustedDays)
}

func TestBalanceService_Adjust_UnknownReferences(t *testing.T) {
	svc := NewBalanceService(newFakeLeaveTypeRepo(annualLeaveType()), newFakeBalanceRepo(), newFakeEmployeeRepo())

	_, err := svc.Adjust(context.Background(), leave.AdjustBalanceRequest{
		EmployeeID: "ghost", LeaveTypeID: "lt-annual", Year: 2026, Days: 1,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.Adjust(context.Background(), leave.AdjustBalanceRequest{
		EmployeeID: "emp-1", LeaveTypeID: "ghost", Year: 2026, Days: 1,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}
