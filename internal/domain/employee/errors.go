package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrDNIExists               = errors.New("DNI already registered")
	ErrInvalidDNI              = errors.New("DNI must be exactly 8 digits")
	ErrEmployeeAlreadyActive   = errors.New("employee is already active")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
)
