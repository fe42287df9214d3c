package employee

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full_time"
	EmploymentTypePartTime EmploymentType = "part_time"
	EmploymentTypeContract EmploymentType = "contract"
)

type Employee struct {
	ID                 string
	UserID             *string
	EmployeeCode       string
	DepartmentID       *string
	ReportingManagerID *string
	EmploymentType     EmploymentType
	Gender             *Gender
	DateOfJoining      time.Time
	ProbationEndDate   *time.Time
	WorkLocation       *string
	Designation        *string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joins (for responses)
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	DepartmentName *string
	ManagerName    *string
}

// DisplayName joins the profile name fields; falls back to the employee code
// when no profile is linked.
func (e Employee) DisplayName() string {
	first, last := "", ""
	if e.FirstName != nil {
		first = *e.FirstName
	}
	if e.LastName != nil {
		last = *e.LastName
	}
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	return e.EmployeeCode
}

// Profile holds display identity for a principal.
type Profile struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
