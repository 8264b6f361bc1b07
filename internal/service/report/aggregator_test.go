package report

import (
	"testing"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/report"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var morningPolicy = schedule.Policy{
	ExpectedEntrance: "08:00",
	ExpectedExit:     "17:00",
	DayOff:           schedule.Sunday,
}

func event(ts string, typ attendance.EventType) attendance.Event {
	t, err := time.Parse("2006-01-02 15:04:05", ts)
	if err != nil {
		panic(err)
	}
	return attendance.Event{EmployeeID: "emp-1", PunchedAt: t, Type: typ, Source: attendance.SourceDevice}
}

func dayOf(t *testing.T, rep report.MonthlyReport, date string) report.DayRecord {
	t.Helper()
	for _, d := range rep.Days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("day %s not in report", date)
	return report.DayRecord{}
}

// May 2024 starts on a Wednesday and has four Sundays.
var endOfMay = time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)

func TestAggregate_LateAndExtraMinutes(t *testing.T) {
	// The 08:10:20 double scan never reaches the ledger.
	events := []attendance.Event{
		event("2024-05-06 08:10:00", attendance.EventEntrance),
		event("2024-05-06 17:05:00", attendance.EventExit),
	}

	rep := Aggregate(morningPolicy, events, 2024, 5, endOfMay)

	day := dayOf(t, rep, "2024-05-06")
	assert.True(t, day.Worked)
	assert.False(t, day.Absent)
	assert.Equal(t, 10, day.LateMinutes)
	assert.Equal(t, 5, day.ExtraMinutes)
	require.NotNil(t, day.Entrance)
	require.NotNil(t, day.Exit)
	assert.Equal(t, "08:10", *day.Entrance)
	assert.Equal(t, "17:05", *day.Exit)
	assert.Equal(t, string(schedule.Monday), day.Weekday)
	assert.Equal(t, "Lunes", day.WeekdayLabel)
}

func TestAggregate_LatenessFloor(t *testing.T) {
	events := []attendance.Event{
		event("2024-05-07 07:45:00", attendance.EventEntrance),
		event("2024-05-07 16:30:00", attendance.EventExit),
	}

	rep := Aggregate(morningPolicy, events, 2024, 5, endOfMay)

	day := dayOf(t, rep, "2024-05-07")
	assert.True(t, day.Worked)
	assert.Equal(t, 0, day.LateMinutes)
	assert.Equal(t, 0, day.ExtraMinutes)
}

func TestAggregate_EarliestEntranceAndLatestExit(t *testing.T) {
	events := []attendance.Event{
		event("2024-05-08 13:00:00", attendance.EventEntrance),
		event("2024-05-08 08:05:00", attendance.EventEntrance),
		event("2024-05-08 12:00:00", attendance.EventExit),
		event("2024-05-08 18:00:00", attendance.EventExit),
	}

	rep := Aggregate(morningPolicy, events, 2024, 5, endOfMay)

	day := dayOf(t, rep, "2024-05-08")
	assert.Equal(t, "08:05", *day.Entrance)
	assert.Equal(t, "18:00", *day.Exit)
	assert.Equal(t, 5, day.LateMinutes)
	assert.Equal(t, 60, day.ExtraMinutes)
}

func TestAggregate_DayOffExcluded(t *testing.T) {
	events := []attendance.Event{
		event("2024-05-12 09:00:00", attendance.EventEntrance), // Sunday
	}

	rep := Aggregate(morningPolicy, events, 2024, 5, endOfMay)

	day := dayOf(t, rep, "2024-05-12")
	assert.True(t, day.IsDayOff)
	assert.False(t, day.Worked)
	assert.False(t, day.Absent)
	assert.Equal(t, 0, day.LateMinutes)
	require.NotNil(t, day.Entrance)
	assert.Equal(t, 4, rep.DaysOff)
}

func TestAggregate_PastAndFutureEmptyDays(t *testing.T) {
	today := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	rep := Aggregate(morningPolicy, nil, 2024, 5, today)

	past := dayOf(t, rep, "2024-05-14")
	assert.True(t, past.Absent)
	assert.False(t, past.Worked)

	// Today counts as elapsed
	assert.True(t, dayOf(t, rep, "2024-05-15").Absent)

	future := dayOf(t, rep, "2024-05-16")
	assert.False(t, future.Absent)
	assert.False(t, future.Worked)

	// May 1..15 minus two Sundays (5th, 12th)
	assert.Equal(t, 13, rep.DaysAbsent)
	assert.Equal(t, 0, rep.DaysWorked)
}

func TestAggregate_MonthTotals(t *testing.T) {
	events := []attendance.Event{
		event("2024-05-06 08:10:00", attendance.EventEntrance),
		event("2024-05-06 17:05:00", attendance.EventExit),
		event("2024-05-07 08:20:00", attendance.EventEntrance),
		event("2024-05-08 17:30:00", attendance.EventExit), // exit only
		event("2024-06-01 08:30:00", attendance.EventEntrance), // next month
	}

	rep := Aggregate(morningPolicy, events, 2024, 5, endOfMay)

	assert.Equal(t, 31, rep.DaysInMonth)
	assert.Len(t, rep.Days, 31)
	assert.Equal(t, 3, rep.DaysWorked)
	assert.Equal(t, 4, rep.DaysOff)
	assert.Equal(t, 31-3-4, rep.DaysAbsent)
	assert.Equal(t, 30, rep.TotalLateMinutes)
	assert.Equal(t, 35, rep.TotalExtraMinutes)
	assert.Equal(t, "Domingo", rep.DayOff)
}

func TestAggregate_UnparseableExpectedTimes(t *testing.T) {
	policy := schedule.Policy{ExpectedEntrance: "", ExpectedExit: "late", DayOff: schedule.Sunday}
	events := []attendance.Event{
		event("2024-05-06 09:00:00", attendance.EventEntrance),
		event("2024-05-06 19:00:00", attendance.EventExit),
	}

	rep := Aggregate(policy, events, 2024, 5, endOfMay)

	day := dayOf(t, rep, "2024-05-06")
	assert.True(t, day.Worked)
	assert.Equal(t, 0, day.LateMinutes)
	assert.Equal(t, 0, day.ExtraMinutes)
}

func TestAggregate_LeapFebruary(t *testing.T) {
	rep := Aggregate(morningPolicy, nil, 2024, 2, endOfMay)
	assert.Equal(t, 29, rep.DaysInMonth)
	assert.Equal(t, "2024-02-29", rep.Days[28].Date)
}

func TestAggregate_NoDayOff(t *testing.T) {
	policy := schedule.Policy{ExpectedEntrance: "08:00", ExpectedExit: "17:00"}
	rep := Aggregate(policy, nil, 2024, 5, endOfMay)
	assert.Equal(t, 0, rep.DaysOff)
	assert.Equal(t, 31, rep.DaysAbsent)
}
