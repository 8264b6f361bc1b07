package employee

import (
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	TerminalID       *int
	FirstName        string
	LastName         string
	DocumentNumber   string
	Position         string
	Shift            schedule.Shift
	ExpectedEntrance string // HH:MM
	ExpectedExit     string // HH:MM
	DayOff           schedule.Weekday
	ContractStart    *time.Time
	ContractDuration *schedule.ContractDuration
	ContractEnd      *time.Time
	Salary           *decimal.Decimal
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Policy returns the schedule policy used by the monthly aggregation.
func (e Employee) Policy() schedule.Policy {
	return schedule.Policy{
		ExpectedEntrance: e.ExpectedEntrance,
		ExpectedExit:     e.ExpectedExit,
		DayOff:           e.DayOff,
	}
}

// RecomputeContractEnd keeps ContractEnd consistent with start and duration.
func (e *Employee) RecomputeContractEnd() {
	e.ContractEnd = schedule.ContractEnd(e.ContractStart, e.ContractDuration)
}

// Positions known to the front desk. Free text is still accepted.
var PositionValues = []string{
	"cajero",
	"mesero",
	"cocinero",
	"lavaplatos",
	"servidora",
	"guardia",
	"despacho",
	"otros",
}

const DefaultPosition = "otros"

type Stats struct {
	Total    int64
	Active   int64
	Inactive int64
}
