package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"noshow/config"
)

// timestampLayouts are tried in order. The dataset uses RFC3339 with a Z
// suffix; the rest cover spreadsheet re-exports of it.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// civilDate drops the clock and keeps the calendar date as written.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// leadTimeDays is the whole-day difference between the two calendar
// dates, ignoring the time of day. Negative when the appointment date
// precedes the scheduling date.
func leadTimeDays(scheduled, appt time.Time) int {
	return int(civilDate(appt).Sub(civilDate(scheduled)).Hours() / 24)
}

// DeriveStats counts the rows dropped under the drop policy.
type DeriveStats struct {
	Malformed int
}

// Derive attaches scheduled_time, lead_time_days and is_noshow to every
// record. Under PolicyAbort the first malformed timestamp fails the run;
// under PolicyDrop the row is logged and skipped.
func Derive(records []RawAppointment, policy string, logger *zap.Logger) ([]CleanedRecord, DeriveStats, error) {
	var stats DeriveStats
	out := make([]CleanedRecord, 0, len(records))
	for _, rec := range records {
		c, err := deriveOne(rec)
		if err != nil {
			var mte *MalformedTimestampError
			if policy == config.PolicyDrop && errors.As(err, &mte) {
				stats.Malformed++
				logger.Warn("dropping row with malformed timestamp",
					zap.Int64("line", mte.Line),
					zap.String("column", mte.Column),
					zap.String("value", mte.Value),
				)
				continue
			}
			return nil, stats, err
		}
		out = append(out, c)
	}
	return out, stats, nil
}

func deriveOne(rec RawAppointment) (CleanedRecord, error) {
	scheduled, ok := parseTimestamp(rec.ScheduledDay)
	if !ok {
		return CleanedRecord{}, &MalformedTimestampError{Line: rec.Line, Column: "ScheduledDay", Value: rec.ScheduledDay}
	}
	appt, ok := parseTimestamp(rec.AppointmentDay)
	if !ok {
		return CleanedRecord{}, &MalformedTimestampError{Line: rec.Line, Column: "AppointmentDay", Value: rec.AppointmentDay}
	}
	noShow, err := parseNoShowLabel(rec.NoShowLabel)
	if err != nil {
		return CleanedRecord{}, fmt.Errorf("line %d: %w", rec.Line, err)
	}

	return CleanedRecord{
		RawAppointment: rec,
		ScheduledAt:    scheduled,
		ApptDate:       civilDate(appt),
		ScheduledTime:  scheduled.Format("15:04"),
		LeadTimeDays:   leadTimeDays(scheduled, appt),
		IsNoShow:       noShow,
	}, nil
}
