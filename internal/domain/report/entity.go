package report

// DayRecord is one calendar day of an employee's month. Not persisted.
type DayRecord struct {
	Date         string  `json:"fecha"`      // YYYY-MM-DD
	Weekday      string  `json:"dia_semana"` // internal weekday name
	WeekdayLabel string  `json:"dia_semana_label"`
	IsDayOff     bool    `json:"es_libre"`
	Entrance     *string `json:"hora_ingreso"` // HH:MM, earliest entrance
	Exit         *string `json:"hora_salida"`  // HH:MM, latest exit
	LateMinutes  int     `json:"minutos_retraso"`
	ExtraMinutes int     `json:"minutos_extra"`
	Worked       bool    `json:"trabajo"`
	Absent       bool    `json:"falta"`
}

// MonthlyReport aggregates one employee's ledger over one calendar month.
type MonthlyReport struct {
	EmployeeID       string `json:"personal_id"`
	EmployeeName     string `json:"nombre"`
	Position         string `json:"puesto"`
	Year             int    `json:"anio"`
	Month            int    `json:"mes"`
	ExpectedEntrance string `json:"hora_entrada"`
	ExpectedExit     string `json:"hora_salida"`
	DayOff           string `json:"dia_libre"`

	Days []DayRecord `json:"dias"`

	DaysInMonth       int `json:"dias_en_mes"`
	DaysWorked        int `json:"dias_trabajados"`
	DaysAbsent        int `json:"dias_falta"`
	DaysOff           int `json:"dias_libres"`
	TotalLateMinutes  int `json:"total_minutos_retraso"`
	TotalExtraMinutes int `json:"total_minutos_extra"`
}

// RankEntry is one row of a dashboard top-5 ranking.
type RankEntry struct {
	EmployeeID   string `json:"personal_id"`
	EmployeeName string `json:"nombre"`
	Position     string `json:"puesto"`
	LateMinutes  int    `json:"minutos_retraso"`
	AbsentDays   int    `json:"dias_falta"`
}

// Dashboard is the fleet-wide variant of the monthly report.
type Dashboard struct {
	Year  int `json:"anio"`
	Month int `json:"mes"`

	TotalEmployees    int `json:"total_personal"`
	TotalDaysAbsent   int `json:"total_dias_falta"`
	TotalLateMinutes  int `json:"total_minutos_retraso"`
	TotalExtraMinutes int `json:"total_minutos_extra"`

	ByPosition map[string]int `json:"por_puesto"`
	TopLate    []RankEntry    `json:"top_retrasos"`
	TopAbsent  []RankEntry    `json:"top_faltas"`
}

// TopN is the size of each dashboard ranking.
const TopN = 5
