package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeCodeExists    = errors.New("employee code already exists")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidEmployeeCode   = errors.New("invalid employee code format")
	ErrInvalidEmploymentType = errors.New("employment type must be full_time, part_time or contract")
	ErrInvalidGender         = errors.New("gender must be male, female or other")
	ErrManagerNotFound       = errors.New("reporting manager not found")
	ErrManagerCycle          = errors.New("reporting manager assignment would create a cycle")
	ErrManagerInactive       = errors.New("reporting manager is not active")
	ErrSelfManager           = errors.New("employee cannot report to themselves")
	ErrAlreadyInactive       = errors.New("employee is already inactive")
)
