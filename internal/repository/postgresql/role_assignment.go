package postgresql

import (
	"context"

	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) user.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

func (r *roleRepositoryImpl) Assign(ctx context.Context, userID string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO role_assignments (id, user_id, role, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
		ON CONFLICT (user_id, role) DO NOTHING
	`
	_, err := q.Exec(ctx, query, userID, string(role))
	return err
}

func (r *roleRepositoryImpl) GetRolesByUserID(ctx context.Context, userID string) ([]user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT role
		FROM role_assignments
		WHERE user_id = $1
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []user.Role
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, user.Role(role))
	}
	return roles, rows.Err()
}

// IsAdminOrHR is the explicit privilege gate in front of employee
// provisioning.
func (r *roleRepositoryImpl) IsAdminOrHR(ctx context.Context, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM role_assignments
			WHERE user_id = $1 AND role IN ('admin', 'hr')
		)
	`
	var ok bool
	if err := q.QueryRow(ctx, query, userID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
