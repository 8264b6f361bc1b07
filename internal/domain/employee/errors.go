package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrDocumentNumberExists    = errors.New("document number already registered")
	ErrTerminalIDExists        = errors.New("terminal id already assigned to another employee")
	ErrTerminalIDImmutable     = errors.New("terminal id cannot be changed once assigned")
	ErrEmployeeInactive        = errors.New("employee is inactive")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
)
