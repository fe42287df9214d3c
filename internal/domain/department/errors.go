package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentInUse    = errors.New("department has active employees")
	ErrNameExists         = errors.New("department name already exists")
)
