package schedule

import "errors"

var (
	ErrInvalidWeekday          = errors.New("day off must be a valid weekday name")
	ErrInvalidClock            = errors.New("time must be in HH:MM format")
	ErrInvalidContractDuration = errors.New("contract duration must be one of: 3_meses, 6_meses, 1_anio")
	ErrInvalidShift            = errors.New("shift must be one of: manana, tarde, especial")
)
