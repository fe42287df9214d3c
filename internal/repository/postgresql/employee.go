package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

const employeeSelectColumns = `
	e.id, e.user_id, e.employee_code, e.department_id, e.reporting_manager_id,
	e.employment_type, e.gender, e.date_of_joining, e.probation_end_date,
	e.work_location, e.designation, e.is_active, e.created_at, e.updated_at,
	p.first_name, p.last_name, p.email, p.phone,
	d.name,
	mp.first_name || ' ' || mp.last_name
`

const employeeSelectJoins = `
	FROM employees e
	LEFT JOIN profiles p ON e.user_id = p.user_id
	LEFT JOIN departments d ON e.department_id = d.id
	LEFT JOIN employees m ON e.reporting_manager_id = m.id
	LEFT JOIN profiles mp ON m.user_id = mp.user_id
`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.EmployeeCode, &e.DepartmentID, &e.ReportingManagerID,
		&e.EmploymentType, &e.Gender, &e.DateOfJoining, &e.ProbationEndDate,
		&e.WorkLocation, &e.Designation, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		&e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.DepartmentName,
		&e.ManagerName,
	)
	return e, err
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, user_id, employee_code, department_id, reporting_manager_id,
			employment_type, gender, date_of_joining, probation_end_date,
			work_location, designation, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, true,
			NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		e.UserID, e.EmployeeCode, e.DepartmentID, e.ReportingManagerID,
		e.EmploymentType, e.Gender, e.DateOfJoining, e.ProbationEndDate,
		e.WorkLocation, e.Designation,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, err
	}
	e.IsActive = true
	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins + " WHERE e.id = $1"
	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins + " WHERE e.user_id = $1"
	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins + " WHERE e.employee_code = $1"
	e, err := scanEmployee(q.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE employee_code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins +
		" WHERE e.is_active = true ORDER BY e.employee_code"
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) ListDirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins +
		" WHERE e.reporting_manager_id = $1 AND e.is_active = true ORDER BY e.employee_code"
	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.DepartmentID != nil {
		addSet("department_id", *req.DepartmentID)
	}
	if req.ReportingManagerID != nil {
		addSet("reporting_manager_id", *req.ReportingManagerID)
	}
	if req.EmploymentType != nil {
		addSet("employment_type", *req.EmploymentType)
	}
	if req.Gender != nil {
		addSet("gender", *req.Gender)
	}
	if req.ProbationEndDate != nil {
		addSet("probation_end_date", *req.ProbationEndDate)
	}
	if req.WorkLocation != nil {
		addSet("work_location", *req.WorkLocation)
	}
	if req.Designation != nil {
		addSet("designation", *req.Designation)
	}

	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)
	args = append(args, id)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetActive flips the soft-delete flag. Rows are never hard-deleted.
func (r *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
