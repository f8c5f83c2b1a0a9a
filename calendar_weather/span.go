package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"noshow/tables"
)

var errNoAppointments = errors.New("no appointments to span")

// ReadApptDateSpan returns the first and last appt_date of the exported
// appointment table in dir.
func ReadApptDateSpan(dir, format string) (time.Time, time.Time, error) {
	var (
		appts []tables.AppointmentRow
		err   error
	)
	switch format {
	case tables.FormatCSV:
		appts, err = tables.ReadCSV(filepath.Join(dir, tables.AppointmentCSVFile), tables.AppointmentCodec)
	case tables.FormatParquet:
		appts, err = tables.ReadParquet[tables.AppointmentRow](filepath.Join(dir, tables.AppointmentParquetFile))
	default:
		err = fmt.Errorf("unknown table format %q", format)
	}
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dateSpan(appts)
}

func dateSpan(appts []tables.AppointmentRow) (time.Time, time.Time, error) {
	if len(appts) == 0 {
		return time.Time{}, time.Time{}, errNoAppointments
	}
	var start, end time.Time
	for i, a := range appts {
		d, err := time.Parse(dateLayout, a.ApptDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("appointment %d: appt_date %q: %w", a.ApptID, a.ApptDate, err)
		}
		if i == 0 || d.Before(start) {
			start = d
		}
		if i == 0 || d.After(end) {
			end = d
		}
	}
	return start, end, nil
}
