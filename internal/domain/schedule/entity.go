package schedule

// Weekday is the locale-neutral day name stored for an employee's day off.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var WeekdayValues = []string{
	string(Monday),
	string(Tuesday),
	string(Wednesday),
	string(Thursday),
	string(Friday),
	string(Saturday),
	string(Sunday),
}

// weekdayLabels are the display labels used at the API and export boundary.
var weekdayLabels = map[Weekday]string{
	Monday:    "Lunes",
	Tuesday:   "Martes",
	Wednesday: "Miercoles",
	Thursday:  "Jueves",
	Friday:    "Viernes",
	Saturday:  "Sabado",
	Sunday:    "Domingo",
}

// ContractDuration is the contract length category chosen at registration.
type ContractDuration string

const (
	ContractThreeMonths ContractDuration = "3_meses"
	ContractSixMonths   ContractDuration = "6_meses"
	ContractOneYear     ContractDuration = "1_anio"
)

var ContractDurationValues = []string{
	string(ContractThreeMonths),
	string(ContractSixMonths),
	string(ContractOneYear),
}

// contractDays is the fixed offset from contract start to contract end.
var contractDays = map[ContractDuration]int{
	ContractThreeMonths: 85,
	ContractSixMonths:   180,
	ContractOneYear:     365,
}

// Shift names a preset working window.
type Shift string

const (
	ShiftMorning   Shift = "manana"
	ShiftAfternoon Shift = "tarde"
	ShiftSpecial   Shift = "especial"
)

var ShiftValues = []string{
	string(ShiftMorning),
	string(ShiftAfternoon),
	string(ShiftSpecial),
}

// ShiftHours holds the expected entrance and exit of a shift as HH:MM.
type ShiftHours struct {
	Entrance string
	Exit     string
}

var shiftPresets = map[Shift]ShiftHours{
	ShiftMorning:   {Entrance: "08:00", Exit: "17:00"},
	ShiftAfternoon: {Entrance: "13:00", Exit: "22:00"},
	ShiftSpecial:   {Entrance: "12:00", Exit: "21:00"},
}

// Policy is the slice of an employee record the monthly aggregation needs.
type Policy struct {
	ExpectedEntrance string
	ExpectedExit     string
	DayOff           Weekday
}
