package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/thinkforge/hrms-backend-go/internal/domain/dashboard"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
	leaveservice "github.com/thinkforge/hrms-backend-go/internal/service/leave"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	leave.LeaveApplicationRepository
	balanceService *leaveservice.BalanceService
	leaveService   *leaveservice.Service
}

func NewDashboardService(
	dashboardRepository dashboard.DashboardRepository,
	leaveApplicationRepository leave.LeaveApplicationRepository,
	balanceService *leaveservice.BalanceService,
	leaveService *leaveservice.Service,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		DashboardRepository:        dashboardRepository,
		LeaveApplicationRepository: leaveApplicationRepository,
		balanceService:             balanceService,
		leaveService:               leaveService,
	}
}

// SelfStats aggregates the principal's current-year ledger. Each per-type
// available is floored at zero before summing; displayed sums round to whole
// days. An unprovisioned principal gets zeroed stats.
func (s *DashboardServiceImpl) SelfStats(ctx context.Context, p identity.Principal) (dashboard.SelfStatsResponse, error) {
	if p.Employee == nil {
		return dashboard.SelfStatsResponse{Balances: []dashboard.BalanceCard{}}, nil
	}

	year := time.Now().Year()

	balances, err := s.balanceService.GetBalances(ctx, p.Employee.ID, year)
	if err != nil {
		return dashboard.SelfStatsResponse{}, err
	}

	availableSum, usedSum := 0.0, 0.0
	cards := make([]dashboard.BalanceCard, 0, len(balances))
	for _, b := range balances {
		availableSum += b.Available
		usedSum += b.Used
		cards = append(cards, dashboard.BalanceCard{
			LeaveTypeID: b.LeaveTypeID,
			Name:        b.LeaveTypeName,
			Code:        b.LeaveTypeCode,
			Available:   b.Available,
			Total:       b.Total,
		})
	}

	lopSum, err := s.LeaveApplicationRepository.SumApprovedLOPDays(ctx, p.Employee.ID, year)
	if err != nil {
		return dashboard.SelfStatsResponse{}, fmt.Errorf("failed to sum LOP days: %w", err)
	}

	pending, err := s.LeaveApplicationRepository.CountPendingByEmployee(ctx, p.Employee.ID)
	if err != nil {
		return dashboard.SelfStatsResponse{}, fmt.Errorf("failed to count pending requests: %w", err)
	}

	return dashboard.SelfStatsResponse{
		AvailableDays:   int(math.Round(availableSum)),
		UsedDays:        int(math.Round(usedSum)),
		LOPDays:         int(math.Round(lopSum)),
		PendingRequests: pending,
		Balances:        cards,
	}, nil
}

// RecentRequests returns the principal's latest applications for the
// dashboard widget.
func (s *DashboardServiceImpl) RecentRequests(ctx context.Context, p identity.Principal, limit int) ([]dashboard.RecentRequestItem, error) {
	apps, err := s.leaveService.ListMine(ctx, p, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dashboard.RecentRequestItem, 0, len(apps))
	for _, app := range apps {
		items = append(items, dashboard.RecentRequestItem{
			ID:        app.ID,
			LeaveType: derefOr(app.LeaveTypeName),
			StartDate: app.StartDate.Format("2006-01-02"),
			EndDate:   app.EndDate.Format("2006-01-02"),
			DaysCount: app.DaysCount,
			Status:    string(app.Status),
			CreatedAt: app.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// PendingApprovals previews the principal's approval queue, oldest first.
func (s *DashboardServiceImpl) PendingApprovals(ctx context.Context, p identity.Principal, limit int) ([]dashboard.PendingApprovalItem, error) {
	apps, err := s.leaveService.ListPending(ctx, p, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dashboard.PendingApprovalItem, 0, len(apps))
	for _, app := range apps {
		items = append(items, dashboard.PendingApprovalItem{
			ID:           app.ID,
			EmployeeName: derefOr(app.EmployeeName),
			LeaveType:    derefOr(app.LeaveTypeName),
			StartDate:    app.StartDate.Format("2006-01-02"),
			EndDate:      app.EndDate.Format("2006-01-02"),
			DaysCount:    app.DaysCount,
			CreatedAt:    app.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// OrgSnapshot is the admin/hr organization overview. The four counters are
// independent queries, so they run concurrently.
func (s *DashboardServiceImpl) OrgSnapshot(ctx context.Context) (dashboard.OrgSnapshotResponse, error) {
	var (
		headcount   int64
		onLeave     int64
		pending     int64
		departments int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.DashboardRepository.CountActiveEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		headcount = n
		return nil
	})

	g.Go(func() error {
		n, err := s.LeaveApplicationRepository.CountOnLeave(gCtx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to count on-leave employees: %w", err)
		}
		onLeave = n
		return nil
	})

	g.Go(func() error {
		n, err := s.DashboardRepository.CountPendingApplications(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count pending applications: %w", err)
		}
		pending = n
		return nil
	})

	g.Go(func() error {
		n, err := s.DashboardRepository.CountDepartments(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count departments: %w", err)
		}
		departments = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.OrgSnapshotResponse{}, err
	}

	return dashboard.OrgSnapshotResponse{
		Headcount:       headcount,
		OnLeaveToday:    onLeave,
		PendingRequests: pending,
		Departments:     departments,
	}, nil
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
