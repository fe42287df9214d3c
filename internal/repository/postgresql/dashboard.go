package postgresql

import (
	"context"

	"github.com/thinkforge/hrms-backend-go/internal/domain/dashboard"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) CountActiveEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = true`).Scan(&count)
	return count, err
}

func (r *dashboardRepositoryImpl) CountPendingApplications(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_applications WHERE status = 'pending'`).Scan(&count)
	return count, err
}

func (r *dashboardRepositoryImpl) CountDepartments(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count)
	return count, err
}
