package leave

import (
	"github.com/thinkforge/hrms-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Reason      *string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	ApplicationID string  `json:"application_id"`
	Remarks       *string `json:"remarks"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApplicationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "application_id",
			Message: "application_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveTypeRequest struct {
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	GenderRestriction  *string `json:"gender_restriction"`
	DefaultEntitlement float64 `json:"default_entitlement"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}
	if len(r.Code) > 10 {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must not exceed 10 characters",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsInSlice(r.Category, []string{
		string(CategoryRegular), string(CategoryWellness), string(CategorySpecial),
		string(CategoryStatutory), string(CategoryCompensatory),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be regular, wellness, special, statutory or compensatory",
		})
	}
	if r.GenderRestriction != nil && !validator.IsInSlice(*r.GenderRestriction, []string{"male", "female"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender_restriction",
			Message: "gender_restriction must be male or female",
		})
	}
	if r.DefaultEntitlement < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_entitlement",
			Message: "default_entitlement must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	ID                 string   `json:"id"`
	Name               *string  `json:"name"`
	Category           *string  `json:"category"`
	GenderRestriction  *string  `json:"gender_restriction"`
	DefaultEntitlement *float64 `json:"default_entitlement"`
	IsEnabled          *bool    `json:"is_enabled"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Category != nil && !validator.IsInSlice(*r.Category, []string{
		string(CategoryRegular), string(CategoryWellness), string(CategorySpecial),
		string(CategoryStatutory), string(CategoryCompensatory),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be regular, wellness, special, statutory or compensatory",
		})
	}
	if r.DefaultEntitlement != nil && *r.DefaultEntitlement < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_entitlement",
			Message: "default_entitlement must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustBalanceRequest struct {
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	Year        int     `json:"year"`
	Days        float64 `json:"days"`
	Note        *string `json:"note"`
}

func (r *AdjustBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if r.Days == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must not be zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BalanceResponse is the per-type read model of the ledger.
type BalanceResponse struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName string  `json:"leave_type_name"`
	LeaveTypeCode string  `json:"leave_type_code"`
	Year          int     `json:"year"`
	Available     float64 `json:"available"`
	Total         float64 `json:"total"`
	Used          float64 `json:"used"`
}

// LedgerRowResponse exposes the stored ledger components after an adjustment.
type LedgerRowResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	LeaveTypeID        string  `json:"leave_type_id"`
	Year               int     `json:"year"`
	EntitledDays       float64 `json:"entitled_days"`
	CarriedForwardDays float64 `json:"carried_forward_days"`
	AdjustedDays       float64 `json:"adjusted_days"`
	UsedDays           float64 `json:"used_days"`
	Available          float64 `json:"available"`
}

func NewLedgerRowResponse(b LeaveBalance) LedgerRowResponse {
	return LedgerRowResponse{
		ID:                 b.ID,
		EmployeeID:         b.EmployeeID,
		LeaveTypeID:        b.LeaveTypeID,
		Year:               b.Year,
		EntitledDays:       b.EntitledDays,
		CarriedForwardDays: b.CarriedForwardDays,
		AdjustedDays:       b.AdjustedDays,
		UsedDays:           b.UsedDays,
		Available:          b.Available(),
	}
}

// ApplicationResponse is the wire shape of one application.
type ApplicationResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	EmployeeCode        *string `json:"employee_code,omitempty"`
	EmployeeName        *string `json:"employee_name,omitempty"`
	LeaveTypeID         string  `json:"leave_type_id"`
	LeaveTypeName       *string `json:"leave_type_name,omitempty"`
	LeaveTypeCode       *string `json:"leave_type_code,omitempty"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	DaysCount           float64 `json:"days_count"`
	Reason              *string `json:"reason,omitempty"`
	Status              string  `json:"status"`
	CurrentApproverRole *string `json:"current_approver_role,omitempty"`
	IsLOP               bool    `json:"is_lop"`
	LOPDays             float64 `json:"lop_days"`
	DecidedBy           *string `json:"decided_by,omitempty"`
	DecidedAt           *string `json:"decided_at,omitempty"`
	Remarks             *string `json:"remarks,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

func NewApplicationResponse(app LeaveApplication) ApplicationResponse {
	resp := ApplicationResponse{
		ID:            app.ID,
		EmployeeID:    app.EmployeeID,
		EmployeeCode:  app.EmployeeCode,
		EmployeeName:  app.EmployeeName,
		LeaveTypeID:   app.LeaveTypeID,
		LeaveTypeName: app.LeaveTypeName,
		LeaveTypeCode: app.LeaveTypeCode,
		StartDate:     app.StartDate.Format("2006-01-02"),
		EndDate:       app.EndDate.Format("2006-01-02"),
		DaysCount:     app.DaysCount,
		Reason:        app.Reason,
		Status:        string(app.Status),
		IsLOP:         app.IsLOP,
		LOPDays:       app.LOPDays,
		DecidedBy:     app.DecidedBy,
		Remarks:       app.Remarks,
		CreatedAt:     app.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if app.CurrentApproverRole != nil {
		role := string(*app.CurrentApproverRole)
		resp.CurrentApproverRole = &role
	}
	if app.DecidedAt != nil {
		decided := app.DecidedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.DecidedAt = &decided
	}
	return resp
}

func NewApplicationResponses(apps []LeaveApplication) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, NewApplicationResponse(app))
	}
	return responses
}

// LeaveTypeResponse is the wire shape of one catalog entry.
type LeaveTypeResponse struct {
	ID                 string  `json:"id"`
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	GenderRestriction  *string `json:"gender_restriction,omitempty"`
	DefaultEntitlement float64 `json:"default_entitlement"`
	IsEnabled          bool    `json:"is_enabled"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                 lt.ID,
		Code:               lt.Code,
		Name:               lt.Name,
		Category:           string(lt.Category),
		GenderRestriction:  lt.GenderRestriction,
		DefaultEntitlement: lt.DefaultEntitlement,
		IsEnabled:          lt.IsEnabled,
	}
}

func NewLeaveTypeResponses(types []LeaveType) []LeaveTypeResponse {
	responses := make([]LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, NewLeaveTypeResponse(lt))
	}
	return responses
}
