package main

import "time"

// RawAppointment is one row of the source dataset, typed but otherwise
// untouched. Timestamps stay raw strings until the derive step so a bad
// timestamp is a per-row condition instead of a load failure.
type RawAppointment struct {
	Line int64 // 1-based CSV line, for diagnostics

	PatientID      string // canonical decimal form, see normalizePatientID
	AppointmentID  int64
	Gender         string
	ScheduledDay   string
	AppointmentDay string
	Age            int32
	Neighbourhood  string
	Scholarship    int32
	Hypertension   int32
	Diabetes       int32
	Alcoholism     int32
	Handicap       int32 // disability level 0-4
	SMSReceived    int32
	NoShowLabel    string // "Yes" means the patient did not attend
}

// CleanedRecord is a raw row that survived the blocklists, with the
// derived fields attached.
type CleanedRecord struct {
	RawAppointment

	ScheduledAt   time.Time
	ApptDate      time.Time
	ScheduledTime string // HH:MM, 24-hour
	LeadTimeDays  int    // may be negative
	IsNoShow      bool   // true when NoShowLabel is "Yes"
}

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)
