package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrInvalidRole            = errors.New("invalid role")
	ErrNoRoleAssigned         = errors.New("no role assigned to user")
	ErrAdminOrHRRequired      = errors.New("admin or hr privilege required")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
