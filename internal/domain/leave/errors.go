package leave

import "errors"

var (
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrLeaveTypeCodeExists = errors.New("leave type code already exists")
	ErrLeaveTypeDisabled   = errors.New("leave type is disabled")
	ErrGenderRestricted    = errors.New("leave type is not available for this employee")

	ErrApplicationNotFound = errors.New("leave application not found")
	ErrAlreadyProcessed    = errors.New("leave application already processed")
	ErrNotCurrentApprover  = errors.New("actor is not the current approver for this application")
	ErrNotOwnApplication   = errors.New("only the submitter may cancel an application")
	ErrEmployeeRequired    = errors.New("no employee record linked to this principal")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrZeroWorkingDays     = errors.New("requested range contains no working days")

	ErrBalanceNotFound = errors.New("leave balance not found")
)
