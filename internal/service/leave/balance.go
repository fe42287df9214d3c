package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
)

// BalanceService is the read model over the balance ledger. Available days
// are always derived from the stored components, never stored themselves.
type BalanceService struct {
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
}

func NewBalanceService(
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	employeeRepository employee.EmployeeRepository,
) *BalanceService {
	return &BalanceService{
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
	}
}

// GetBalances returns one entry per eligible enabled leave type. Types with
// no balance row fall back to the default entitlement with zero usage.
func (s *BalanceService) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	types, err := s.LeaveTypeRepository.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	rows, err := s.LeaveBalanceRepository.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	byType := make(map[string]leave.LeaveBalance, len(rows))
	for _, b := range rows {
		byType[b.LeaveTypeID] = b
	}

	var responses []leave.BalanceResponse
	for _, lt := range types {
		if !EligibleByGender(lt, emp.Gender) {
			continue
		}

		b, ok := byType[lt.ID]
		if !ok {
			b = leave.LeaveBalance{
				EmployeeID:   employeeID,
				LeaveTypeID:  lt.ID,
				Year:         year,
				EntitledDays: lt.DefaultEntitlement,
			}
		}
		responses = append(responses, leave.BalanceResponse{
			LeaveTypeID:   lt.ID,
			LeaveTypeName: lt.Name,
			LeaveTypeCode: lt.Code,
			Year:          year,
			Available:     b.Available(),
			Total:         b.Total(),
			Used:          b.UsedDays,
		})
	}
	return responses, nil
}

// AvailableFor returns the derived available days for one leave type, using
// the default-entitlement fallback when no row exists yet.
func (s *BalanceService) AvailableFor(ctx context.Context, employeeID string, lt leave.LeaveType, year int) (float64, error) {
	b, err := s.LeaveBalanceRepository.GetByEmployeeTypeYear(ctx, employeeID, lt.ID, year)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			b = leave.LeaveBalance{EntitledDays: lt.DefaultEntitlement}
			return b.Available(), nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return b.Available(), nil
}

// Adjust credits or debits adjusted_days for one (employee, type, year). The
// row is created from the default entitlement when missing.
func (s *BalanceService) Adjust(ctx context.Context, req leave.AdjustBalanceRequest) (leave.LeaveBalance, error) {
	lt, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveBalance{}, err
	}

	b, err := s.LeaveBalanceRepository.EnsureRow(ctx, req.EmployeeID, req.LeaveTypeID, req.Year, lt.DefaultEntitlement)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to ensure balance row: %w", err)
	}
	if err := s.LeaveBalanceRepository.AddAdjustment(ctx, b.ID, req.Days); err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to adjust balance: %w", err)
	}

	b.AdjustedDays += req.Days
	return b, nil
}

// EligibleByGender applies the optional gender restriction. An employee with
// no recorded gender is treated permissively.
func EligibleByGender(lt leave.LeaveType, gender *employee.Gender) bool {
	if lt.GenderRestriction == nil || gender == nil {
		return true
	}
	return *lt.GenderRestriction == string(*gender)
}
