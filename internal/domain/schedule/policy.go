package schedule

import (
	"strconv"
	"strings"
	"time"
)

// ContractEnd returns start plus the fixed offset of the duration category.
// It returns nil when start is unset or the category is unknown.
func ContractEnd(start *time.Time, duration *ContractDuration) *time.Time {
	if start == nil || duration == nil {
		return nil
	}
	days, ok := contractDays[*duration]
	if !ok {
		return nil
	}
	end := start.AddDate(0, 0, days)
	return &end
}

// ParseContractDuration validates a duration category name.
func ParseContractDuration(s string) (ContractDuration, error) {
	d := ContractDuration(strings.TrimSpace(s))
	if _, ok := contractDays[d]; !ok {
		return "", ErrInvalidContractDuration
	}
	return d, nil
}

// WeekdayOf maps a calendar date to its weekday name.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ParseWeekday accepts the internal names and the display labels, case and
// accent insensitive ("Miércoles" and "wednesday" both parse).
func ParseWeekday(s string) (Weekday, error) {
	name := normalize(s)
	for _, v := range WeekdayValues {
		if name == v {
			return Weekday(v), nil
		}
	}
	for day, label := range weekdayLabels {
		if name == normalize(label) {
			return day, nil
		}
	}
	return "", ErrInvalidWeekday
}

// Label returns the display label, or the raw value for unknown days.
func (w Weekday) Label() string {
	if label, ok := weekdayLabels[w]; ok {
		return label
	}
	return string(w)
}

// IsDayOff reports whether date falls on the configured day off.
func IsDayOff(date time.Time, dayOff Weekday) bool {
	return dayOff != "" && WeekdayOf(date) == dayOff
}

// ParseShift validates a shift name.
func ParseShift(s string) (Shift, error) {
	shift := Shift(normalize(s))
	if _, ok := shiftPresets[shift]; !ok {
		return "", ErrInvalidShift
	}
	return shift, nil
}

// Hours returns the preset window of the shift.
func (s Shift) Hours() (ShiftHours, bool) {
	h, ok := shiftPresets[s]
	return h, ok
}

// ParseClock parses "HH:MM" (seconds are tolerated and dropped) into minutes
// since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}

// FormatClock renders the wall clock of t as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n").Replace(s)
}
