package dashboard

// ========== SELF DASHBOARD ==========

// BalanceCard is one leave-type tile on the employee dashboard.
type BalanceCard struct {
	LeaveTypeID string  `json:"leave_type_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Available   float64 `json:"available"`
	Total       float64 `json:"total"`
}

// SelfStatsResponse aggregates the signed-in employee's current year.
// AvailableDays sums per-type available (each floored at zero first);
// the day sums are rounded to whole days for display.
type SelfStatsResponse struct {
	AvailableDays   int           `json:"available_days"`
	UsedDays        int           `json:"used_days"`
	LOPDays         int           `json:"lop_days"`
	PendingRequests int64         `json:"pending_requests"`
	Balances        []BalanceCard `json:"balances"`
}

// RecentRequestItem is one row of the recent-requests widget.
type RecentRequestItem struct {
	ID        string  `json:"id"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	DaysCount float64 `json:"days_count"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// PendingApprovalItem is one row of the pending-approvals widget.
type PendingApprovalItem struct {
	ID           string  `json:"id"`
	EmployeeName string  `json:"employee_name"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DaysCount    float64 `json:"days_count"`
	CreatedAt    string  `json:"created_at"`
}

// ========== ORG DASHBOARD ==========

// OrgSnapshotResponse is the admin/hr organization-wide overview.
type OrgSnapshotResponse struct {
	Headcount       int64 `json:"headcount"`
	OnLeaveToday    int64 `json:"on_leave_today"`
	PendingRequests int64 `json:"pending_requests"`
	Departments     int64 `json:"departments"`
}
