package employee

import (
	"github.com/thinkforge/hrms-backend-go/internal/pkg/validator"
)

// ProvisionEmployeeRequest creates (or reuses) a principal and inserts the
// personnel record.
type ProvisionEmployeeRequest struct {
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Email              string  `json:"email"`
	Phone              *string `json:"phone"`
	EmployeeCode       string  `json:"employee_code"`
	DepartmentID       *string `json:"department_id"`
	ReportingManagerID *string `json:"reporting_manager_id"`
	EmploymentType     string  `json:"employment_type"`
	Gender             *string `json:"gender"`
	DateOfJoining      string  `json:"date_of_joining"`
	ProbationEndDate   *string `json:"probation_end_date"`
	WorkLocation       *string `json:"work_location"`
	Designation        *string `json:"designation"`
}

func (r *ProvisionEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must look like TF-0042",
		})
	}
	if !validator.IsInSlice(r.EmploymentType, []string{
		string(EmploymentTypeFullTime), string(EmploymentTypePartTime), string(EmploymentTypeContract),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be full_time, part_time or contract",
		})
	}
	if r.Gender != nil && !validator.IsInSlice(*r.Gender, []string{
		string(GenderMale), string(GenderFemale), string(GenderOther),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be male, female or other",
		})
	}
	if validator.IsEmpty(r.DateOfJoining) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_joining",
			Message: "date_of_joining is required",
		})
	} else if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_joining",
			Message: "date_of_joining must be in YYYY-MM-DD format",
		})
	}
	if r.ProbationEndDate != nil {
		if _, ok := validator.IsValidDate(*r.ProbationEndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "probation_end_date",
				Message: "probation_end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProvisionEmployeeResponse reports the created record. TempPassword is set
// only when a brand-new principal was created.
type ProvisionEmployeeResponse struct {
	EmployeeID       string  `json:"employee_id"`
	UserID           string  `json:"user_id"`
	TempPassword     *string `json:"temp_password,omitempty"`
	ShowTempPassword bool    `json:"show_temp_password"`
}

// EmployeeResponse is the wire shape of one directory entry.
type EmployeeResponse struct {
	ID                 string  `json:"id"`
	EmployeeCode       string  `json:"employee_code"`
	Name               string  `json:"name"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	DepartmentID       *string `json:"department_id,omitempty"`
	DepartmentName     *string `json:"department_name,omitempty"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
	ManagerName        *string `json:"manager_name,omitempty"`
	EmploymentType     string  `json:"employment_type"`
	Gender             *string `json:"gender,omitempty"`
	DateOfJoining      string  `json:"date_of_joining"`
	ProbationEndDate   *string `json:"probation_end_date,omitempty"`
	WorkLocation       *string `json:"work_location,omitempty"`
	Designation        *string `json:"designation,omitempty"`
	IsActive           bool    `json:"is_active"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 e.ID,
		EmployeeCode:       e.EmployeeCode,
		Name:               e.DisplayName(),
		Email:              e.Email,
		Phone:              e.Phone,
		DepartmentID:       e.DepartmentID,
		DepartmentName:     e.DepartmentName,
		ReportingManagerID: e.ReportingManagerID,
		ManagerName:        e.ManagerName,
		EmploymentType:     string(e.EmploymentType),
		DateOfJoining:      e.DateOfJoining.Format("2006-01-02"),
		WorkLocation:       e.WorkLocation,
		Designation:        e.Designation,
		IsActive:           e.IsActive,
	}
	if e.Gender != nil {
		g := string(*e.Gender)
		resp.Gender = &g
	}
	if e.ProbationEndDate != nil {
		probation := e.ProbationEndDate.Format("2006-01-02")
		resp.ProbationEndDate = &probation
	}
	return resp
}

func NewEmployeeResponses(employees []Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, NewEmployeeResponse(e))
	}
	return responses
}

// UpdateEmployeeRequest - nil fields are left untouched.
type UpdateEmployeeRequest struct {
	DepartmentID       *string `json:"department_id"`
	ReportingManagerID *string `json:"reporting_manager_id"`
	EmploymentType     *string `json:"employment_type"`
	Gender             *string `json:"gender"`
	ProbationEndDate   *string `json:"probation_end_date"`
	WorkLocation       *string `json:"work_location"`
	Designation        *string `json:"designation"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, []string{
		string(EmploymentTypeFullTime), string(EmploymentTypePartTime), string(EmploymentTypeContract),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be full_time, part_time or contract",
		})
	}
	if r.Gender != nil && !validator.IsInSlice(*r.Gender, []string{
		string(GenderMale), string(GenderFemale), string(GenderOther),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be male, female or other",
		})
	}
	if r.ProbationEndDate != nil {
		if _, ok := validator.IsValidDate(*r.ProbationEndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "probation_end_date",
				Message: "probation_end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
