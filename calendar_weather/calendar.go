package main

import (
	"time"

	"noshow/tables"
)

const dateLayout = "2006-01-02"

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mondayFirst maps time.Weekday (Sunday=0) to Monday=0 … Sunday=6.
func mondayFirst(w time.Weekday) int32 {
	return int32((w + 6) % 7)
}

// BuildCalendar emits one row per day from start to end inclusive. The
// before/after flags look at the neighbouring row only, so the first and
// last day of the span never carry them.
func BuildCalendar(start, end time.Time, holidays *HolidayCalendar) []tables.CalendarRow {
	start, end = civilDate(start), civilDate(end)
	if end.Before(start) {
		return nil
	}

	var rows []tables.CalendarRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dow := mondayFirst(d.Weekday())
		rows = append(rows, tables.CalendarRow{
			Date:      d.Format(dateLayout),
			Dow:       dow,
			Month:     int32(d.Month()),
			IsWeekend: flag(dow >= 5),
			IsHoliday: flag(holidays.IsHoliday(d)),
		})
	}
	for i := range rows {
		if i+1 < len(rows) {
			rows[i].IsBeforeHoliday = rows[i+1].IsHoliday
		}
		if i > 0 {
			rows[i].IsAfterHoliday = rows[i-1].IsHoliday
		}
	}
	return rows
}

func flag(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
