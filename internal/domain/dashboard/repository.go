package dashboard

import "context"

// DashboardRepository - aggregate counters that don't belong to any single
// domain repository.
type DashboardRepository interface {
	CountActiveEmployees(ctx context.Context) (int64, error)
	CountPendingApplications(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
}
