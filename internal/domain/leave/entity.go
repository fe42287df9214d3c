package leave

import (
	"time"

	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
)

type LeaveCategory string

const (
	CategoryRegular      LeaveCategory = "regular"
	CategoryWellness     LeaveCategory = "wellness"
	CategorySpecial      LeaveCategory = "special"
	CategoryStatutory    LeaveCategory = "statutory"
	CategoryCompensatory LeaveCategory = "compensatory"
)

// LeaveType catalog entity. Types are disabled, never deleted, so historic
// applications keep their reference.
type LeaveType struct {
	ID                 string
	Code               string
	Name               string
	Category           LeaveCategory
	GenderRestriction  *string // "male" / "female"; nil means unrestricted
	DefaultEntitlement float64
	IsEnabled          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LeaveBalance - one row per (employee, leave type, year). The available
// quantity is always derived, never stored.
type LeaveBalance struct {
	ID                 string
	EmployeeID         string
	LeaveTypeID        string
	Year               int
	EntitledDays       float64
	CarriedForwardDays float64
	AdjustedDays       float64
	UsedDays           float64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joins (for responses)
	LeaveTypeName *string
	LeaveTypeCode *string
}

// Available clamps the derived balance at zero.
func (b LeaveBalance) Available() float64 {
	available := b.EntitledDays + b.CarriedForwardDays + b.AdjustedDays - b.UsedDays
	if available < 0 {
		return 0
	}
	return available
}

// Total is the credit side of the ledger, ignoring usage.
func (b LeaveBalance) Total() float64 {
	return b.EntitledDays + b.CarriedForwardDays + b.AdjustedDays
}

type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCancelled ApplicationStatus = "cancelled"
)

// Terminal reports whether no further transition may leave this status.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// LeaveApplication is the workflow entity. Invariant: status is pending if
// and only if CurrentApproverRole is non-nil.
type LeaveApplication struct {
	ID                  string
	EmployeeID          string
	LeaveTypeID         string
	StartDate           time.Time
	EndDate             time.Time
	DaysCount           float64
	Reason              *string
	Status              ApplicationStatus
	CurrentApproverRole *user.Role
	IsLOP               bool
	LOPDays             float64
	DecidedBy           *string
	DecidedAt           *time.Time
	Remarks             *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joins (for responses)
	LeaveTypeName *string
	LeaveTypeCode *string
	EmployeeCode  *string
	EmployeeName  *string
}
