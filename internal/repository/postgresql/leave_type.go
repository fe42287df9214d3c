package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (
			id, code, name, category, gender_restriction, default_entitlement, is_enabled,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, true,
			NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		lt.Code, lt.Name, lt.Category, lt.GenderRestriction, lt.DefaultEntitlement,
	).Scan(&lt.ID, &lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, err
	}
	lt.IsEnabled = true
	return lt, nil
}

func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, category, gender_restriction, default_entitlement, is_enabled,
		       created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`
	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Code, &lt.Name, &lt.Category, &lt.GenderRestriction,
		&lt.DefaultEntitlement, &lt.IsEnabled, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	if err != nil {
		return leave.LeaveType{}, err
	}
	return lt, nil
}

func (r *leaveTypeRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_types WHERE code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context, enabledOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, category, gender_restriction, default_entitlement, is_enabled,
		       created_at, updated_at
		FROM leave_types
	`
	if enabledOnly {
		query += " WHERE is_enabled = true"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		err := rows.Scan(
			&lt.ID, &lt.Code, &lt.Name, &lt.Category, &lt.GenderRestriction,
			&lt.DefaultEntitlement, &lt.IsEnabled, &lt.CreatedAt, &lt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, lt leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types
		SET name = $1, category = $2, gender_restriction = $3, default_entitlement = $4,
		    is_enabled = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query,
		lt.Name, lt.Category, lt.GenderRestriction, lt.DefaultEntitlement, lt.IsEnabled, lt.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

func (r *leaveTypeRepositoryImpl) SetEnabled(ctx context.Context, id string, enabled bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types
		SET is_enabled = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, enabled, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}
