package response

import (
	"errors"
	"net/http"

	"github.com/thinkforge/hrms-backend-go/internal/domain/auth"
	"github.com/thinkforge/hrms-backend-go/internal/domain/department"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/domain/settings"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, auth.ErrUserNotProvisioned):
		Forbidden(w, "Account has not been provisioned yet")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrNoRoleAssigned):
		Forbidden(w, "No role assigned")
	case errors.Is(err, user.ErrAdminOrHRRequired):
		Forbidden(w, "Admin or HR privilege required")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Reporting manager not found")
	case errors.Is(err, employee.ErrManagerCycle):
		Conflict(w, "Manager assignment would create a reporting cycle")
	case errors.Is(err, employee.ErrManagerInactive):
		BadRequest(w, "Reporting manager is not active", nil)
	case errors.Is(err, employee.ErrSelfManager):
		BadRequest(w, "Employee cannot report to themselves", nil)
	case errors.Is(err, employee.ErrAlreadyInactive):
		Conflict(w, "Employee is already inactive")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeCodeExists):
		Conflict(w, "Leave type code already exists")
	case errors.Is(err, leave.ErrLeaveTypeDisabled):
		BadRequest(w, "Leave type is disabled", nil)
	case errors.Is(err, leave.ErrGenderRestricted):
		BadRequest(w, "Leave type is not available for this employee", nil)
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave application already processed")
	case errors.Is(err, leave.ErrNotCurrentApprover):
		Forbidden(w, "Not the current approver for this application")
	case errors.Is(err, leave.ErrNotOwnApplication):
		Forbidden(w, "Only the submitter may cancel an application")
	case errors.Is(err, leave.ErrEmployeeRequired):
		Forbidden(w, "No employee record linked to this account")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrZeroWorkingDays):
		BadRequest(w, "Requested range contains no working days", nil)
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentInUse):
		Conflict(w, "Department still has active employees")

	// Settings domain errors
	case errors.Is(err, settings.ErrTemplateNotFound):
		NotFound(w, "Email template not found")
	case errors.Is(err, settings.ErrSenderConfigNotFound):
		NotFound(w, "No enabled sender config")
	case errors.Is(err, settings.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
