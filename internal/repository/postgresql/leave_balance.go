package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const balanceSelectColumns = `
	b.id, b.employee_id, b.leave_type_id, b.year,
	b.entitled_days, b.carried_forward_days, b.adjusted_days, b.used_days,
	b.created_at, b.updated_at,
	lt.name, lt.code
`

func scanBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.CarriedForwardDays, &b.AdjustedDays, &b.UsedDays,
		&b.CreatedAt, &b.UpdatedAt,
		&b.LeaveTypeName, &b.LeaveTypeCode,
	)
	return b, err
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceSelectColumns + `
		FROM leave_balances b
		JOIN leave_types lt ON lt.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.year = $2
		ORDER BY lt.name
	`
	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceSelectColumns + `
		FROM leave_balances b
		JOIN leave_types lt ON lt.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.leave_type_id = $2 AND b.year = $3
	`
	b, err := scanBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID, year))
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) EnsureRow(ctx context.Context, employeeID, leaveTypeID string, year int, entitledDays float64) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	// Insert-if-absent keyed on (employee, type, year). The no-op update lets
	// RETURNING surface the existing row on conflict.
	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year,
			entitled_days, carried_forward_days, adjusted_days, used_days,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, 0, 0, 0,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, leave_type_id, year)
		DO UPDATE SET updated_at = leave_balances.updated_at
		RETURNING id, employee_id, leave_type_id, year,
		          entitled_days, carried_forward_days, adjusted_days, used_days,
		          created_at, updated_at
	`
	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year, entitledDays).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.CarriedForwardDays, &b.AdjustedDays, &b.UsedDays,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) AddAdjustment(ctx context.Context, id string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET adjusted_days = adjusted_days + $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

func (r *leaveBalanceRepositoryImpl) IncrementUsed(ctx context.Context, id string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
