package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noshow/config"
	"noshow/tables"
)

func newCalendar(t *testing.T) *HolidayCalendar {
	t.Helper()
	cal, err := NewHolidayCalendar(config.RegionBrazilEspiritoSanto)
	require.NoError(t, err)
	return cal
}

func TestBuildCalendar(t *testing.T) {
	rows := BuildCalendar(date("2016-04-29"), date("2016-05-02"), newCalendar(t))

	assert.Equal(t, []tables.CalendarRow{
		{Date: "2016-04-29", Dow: 4, Month: 4},
		{Date: "2016-04-30", Dow: 5, Month: 4, IsWeekend: 1, IsBeforeHoliday: 1},
		{Date: "2016-05-01", Dow: 6, Month: 5, IsWeekend: 1, IsHoliday: 1},
		{Date: "2016-05-02", Dow: 0, Month: 5, IsAfterHoliday: 1},
	}, rows)
}

func TestBuildCalendarSingleDay(t *testing.T) {
	rows := BuildCalendar(date("2016-05-04"), date("2016-05-04"), newCalendar(t))
	require.Len(t, rows, 1)
	assert.Equal(t, tables.CalendarRow{Date: "2016-05-04", Dow: 2, Month: 5}, rows[0])
}

func TestBuildCalendarBoundaries(t *testing.T) {
	// Holidays just outside the range never leak into the flags.
	rows := BuildCalendar(date("2016-04-19"), date("2016-04-20"), newCalendar(t))
	require.Len(t, rows, 2)
	assert.Zero(t, rows[1].IsBeforeHoliday)

	rows = BuildCalendar(date("2016-05-01"), date("2016-05-03"), newCalendar(t))
	require.Len(t, rows, 3)
	assert.Equal(t, int32(1), rows[0].IsHoliday)
	assert.Zero(t, rows[0].IsAfterHoliday)
	assert.Equal(t, int32(1), rows[1].IsAfterHoliday)
}

func TestBuildCalendarContinuous(t *testing.T) {
	rows := BuildCalendar(date("2016-04-29"), date("2016-06-08"), newCalendar(t))
	require.Len(t, rows, 41)
	for i := 1; i < len(rows); i++ {
		prev, cur := date(rows[i-1].Date), date(rows[i].Date)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur)
		assert.Equal(t, rows[i-1].IsHoliday, rows[i].IsAfterHoliday)
		assert.Equal(t, rows[i].IsHoliday, rows[i-1].IsBeforeHoliday)
	}
	for _, r := range rows {
		assert.Equal(t, r.Dow >= 5, r.IsWeekend == 1, r.Date)
	}
}

func TestBuildCalendarEmptyRange(t *testing.T) {
	assert.Nil(t, BuildCalendar(date("2016-05-02"), date("2016-05-01"), newCalendar(t)))
}
