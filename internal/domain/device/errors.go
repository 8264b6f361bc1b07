package device

import "errors"

var (
	// ErrTerminalUnreachable wraps every transport failure so callers can tell
	// "device offline" apart from "device has zero punches".
	ErrTerminalUnreachable = errors.New("attendance terminal is unreachable")
	ErrInvalidAddress      = errors.New("terminal address is invalid")
)
