package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.LeaveApplicationRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}

const applicationSelectColumns = `
	a.id, a.employee_id, a.leave_type_id, a.start_date, a.end_date, a.days_count,
	a.reason, a.status, a.current_approver_role, a.is_lop, a.lop_days,
	a.decided_by, a.decided_at, a.remarks, a.created_at, a.updated_at,
	lt.name, lt.code,
	e.employee_code,
	COALESCE(p.first_name || ' ' || p.last_name, e.employee_code)
`

const applicationSelectJoins = `
	FROM leave_applications a
	JOIN leave_types lt ON lt.id = a.leave_type_id
	JOIN employees e ON e.id = a.employee_id
	LEFT JOIN profiles p ON p.user_id = e.user_id
`

func scanApplication(row pgx.Row) (leave.LeaveApplication, error) {
	var app leave.LeaveApplication
	err := row.Scan(
		&app.ID, &app.EmployeeID, &app.LeaveTypeID, &app.StartDate, &app.EndDate, &app.DaysCount,
		&app.Reason, &app.Status, &app.CurrentApproverRole, &app.IsLOP, &app.LOPDays,
		&app.DecidedBy, &app.DecidedAt, &app.Remarks, &app.CreatedAt, &app.UpdatedAt,
		&app.LeaveTypeName, &app.LeaveTypeCode,
		&app.EmployeeCode,
		&app.EmployeeName,
	)
	return app, err
}

// scopeConditions renders the visibility scope to SQL predicates. Argument
// numbering continues from len(args)+1.
func scopeConditions(scope leave.ApplicationScope, args []any) ([]string, []any) {
	var conds []string
	if scope.EmployeeIDs != nil {
		args = append(args, *scope.EmployeeIDs)
		conds = append(conds, fmt.Sprintf("a.employee_id = ANY($%d)", len(args)))
	}
	if scope.ExcludeEmployeeID != nil {
		args = append(args, *scope.ExcludeEmployeeID)
		conds = append(conds, fmt.Sprintf("a.employee_id <> $%d", len(args)))
	}
	return conds, args
}

func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			id, employee_id, leave_type_id, start_date, end_date, days_count,
			reason, status, current_approver_role, is_lop, lop_days,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		app.EmployeeID, app.LeaveTypeID, app.StartDate, app.EndDate, app.DaysCount,
		app.Reason, app.Status, app.CurrentApproverRole, app.IsLOP, app.LOPDays,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	return app, nil
}

func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + applicationSelectColumns + applicationSelectJoins + " WHERE a.id = $1"
	app, err := scanApplication(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	return app, nil
}

func (r *leaveApplicationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + applicationSelectColumns + applicationSelectJoins +
		" WHERE a.employee_id = $1 ORDER BY a.created_at DESC"
	args := []any{employeeID}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *leaveApplicationRepositoryImpl) ListPending(ctx context.Context, scope leave.ApplicationScope, limit int) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	conds := []string{"a.status = 'pending'"}
	var args []any
	if len(scope.ApproverRoles) > 0 {
		roles := make([]string, 0, len(scope.ApproverRoles))
		for _, role := range scope.ApproverRoles {
			roles = append(roles, string(role))
		}
		args = append(args, roles)
		conds = append(conds, fmt.Sprintf("a.current_approver_role = ANY($%d)", len(args)))
	}
	scoped, args := scopeConditions(scope, args)
	conds = append(conds, scoped...)

	query := "SELECT " + applicationSelectColumns + applicationSelectJoins +
		" WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY a.created_at ASC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *leaveApplicationRepositoryImpl) ListHistory(ctx context.Context, scope leave.ApplicationScope, filter leave.HistoryFilter) ([]leave.LeaveApplication, int64, error) {
	q := GetQuerier(ctx, r.db)

	conds := []string{"1=1"}
	var args []any
	scoped, args := scopeConditions(scope, args)
	conds = append(conds, scoped...)
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conds = append(conds, fmt.Sprintf("EXTRACT(YEAR FROM a.start_date) = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*)" + applicationSelectJoins + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + applicationSelectColumns + applicationSelectJoins + where +
		" ORDER BY a.created_at DESC"
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		args = append(args, filter.PageSize)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (page-1)*filter.PageSize)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps, err := collectApplications(rows)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *leaveApplicationRepositoryImpl) CountPendingByEmployee(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `SELECT COUNT(*) FROM leave_applications WHERE employee_id = $1 AND status = 'pending'`
	err := q.QueryRow(ctx, query, employeeID).Scan(&count)
	return count, err
}

func (r *leaveApplicationRepositoryImpl) SumApprovedLOPDays(ctx context.Context, employeeID string, year int) (float64, error) {
	q := GetQuerier(ctx, r.db)

	var sum float64
	query := `
		SELECT COALESCE(SUM(lop_days), 0)
		FROM leave_applications
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND is_lop = true
		  AND EXTRACT(YEAR FROM start_date) = $2
	`
	err := q.QueryRow(ctx, query, employeeID, year).Scan(&sum)
	return sum, err
}

func (r *leaveApplicationRepositoryImpl) CountOnLeave(ctx context.Context, day time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `
		SELECT COUNT(DISTINCT employee_id)
		FROM leave_applications
		WHERE status = 'approved'
		  AND start_date <= $1
		  AND end_date >= $1
	`
	err := q.QueryRow(ctx, query, day).Scan(&count)
	return count, err
}

func (r *leaveApplicationRepositoryImpl) Transition(ctx context.Context, id string, to leave.ApplicationStatus, decidedBy string, remarks *string) error {
	q := GetQuerier(ctx, r.db)

	// The status predicate makes concurrent decisions race-safe: the losing
	// update matches zero rows.
	query := `
		UPDATE leave_applications
		SET status = $1, current_approver_role = NULL,
		    decided_by = $2, decided_at = NOW(), remarks = $3,
		    updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
	`
	tag, err := q.Exec(ctx, query, to, decidedBy, remarks, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from an already-decided one.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_applications WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return leave.ErrApplicationNotFound
		}
		return leave.ErrAlreadyProcessed
	}
	return nil
}

func collectApplications(rows pgx.Rows) ([]leave.LeaveApplication, error) {
	var apps []leave.LeaveApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
