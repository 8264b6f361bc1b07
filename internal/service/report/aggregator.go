package report

import (
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/report"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/schedule"
)

// MonthRange returns the half-open range [first day, first day of next month).
func MonthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Aggregate builds one employee's month from their ledger events. It is pure:
// today decides which empty days already count as absences, and events outside
// the month are ignored.
func Aggregate(policy schedule.Policy, events []attendance.Event, year, month int, today time.Time) report.MonthlyReport {
	from, to := MonthRange(year, month)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	type dayEvents struct {
		entrance *time.Time
		exit     *time.Time
	}
	byDay := make(map[int]*dayEvents)
	for _, ev := range events {
		at := ev.PunchedAt
		if at.Before(from) || !at.Before(to) {
			continue
		}
		d, ok := byDay[at.Day()]
		if !ok {
			d = &dayEvents{}
			byDay[at.Day()] = d
		}
		switch ev.Type {
		case attendance.EventEntrance:
			if d.entrance == nil || at.Before(*d.entrance) {
				d.entrance = &at
			}
		case attendance.EventExit:
			if d.exit == nil || at.After(*d.exit) {
				d.exit = &at
			}
		}
	}

	expectedEntrance, entranceErr := schedule.ParseClock(policy.ExpectedEntrance)
	expectedExit, exitErr := schedule.ParseClock(policy.ExpectedExit)

	rep := report.MonthlyReport{
		Year:             year,
		Month:            month,
		ExpectedEntrance: policy.ExpectedEntrance,
		ExpectedExit:     policy.ExpectedExit,
		DayOff:           policy.DayOff.Label(),
	}

	for date := from; date.Before(to); date = date.AddDate(0, 0, 1) {
		weekday := schedule.WeekdayOf(date)
		rec := report.DayRecord{
			Date:         date.Format("2006-01-02"),
			Weekday:      string(weekday),
			WeekdayLabel: weekday.Label(),
			IsDayOff:     schedule.IsDayOff(date, policy.DayOff),
		}

		d := byDay[date.Day()]
		if d != nil && d.entrance != nil {
			s := schedule.FormatClock(*d.entrance)
			rec.Entrance = &s
		}
		if d != nil && d.exit != nil {
			s := schedule.FormatClock(*d.exit)
			rec.Exit = &s
		}

		switch {
		case rec.IsDayOff:
			rep.DaysOff++
		case rec.Entrance != nil || rec.Exit != nil:
			rec.Worked = true
			if d.entrance != nil && entranceErr == nil {
				rec.LateMinutes = max(0, minuteOfDay(*d.entrance)-expectedEntrance)
			}
			if d.exit != nil && exitErr == nil {
				rec.ExtraMinutes = max(0, minuteOfDay(*d.exit)-expectedExit)
			}
			rep.DaysWorked++
			rep.TotalLateMinutes += rec.LateMinutes
			rep.TotalExtraMinutes += rec.ExtraMinutes
		case !date.After(todayDate):
			rec.Absent = true
			rep.DaysAbsent++
		}

		rep.Days = append(rep.Days, rec)
	}
	rep.DaysInMonth = len(rep.Days)

	return rep
}

// minuteOfDay truncates seconds, matching the HH:MM precision of the schedule.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
