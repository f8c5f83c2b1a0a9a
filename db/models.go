package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Appointment struct {
	ApptID        int64
	PatientID     string
	NhoodID       int32
	ScheduledAt   pgtype.Timestamptz
	ApptDate      pgtype.Date
	ScheduledTime string
	IsNoshow      bool
	SmsReceived   int16
	LeadTimeDays  int32
}

type CalendarDay struct {
	Date            pgtype.Date
	Dow             int16
	Month           int16
	IsWeekend       int16
	IsHoliday       int16
	IsBeforeHoliday int16
	IsAfterHoliday  int16
}

type Neighbourhood struct {
	NhoodID     int32
	NhoodName   string
	TotalAppts  int64
	NoshowCount int64
	NoshowRate  float64
	AvgLeadTime float64
}

type Patient struct {
	PatientID       string
	Gender          string
	Age             int32
	HasHypertension int16
	HasDiabetes     int16
	HasAlcoholism   int16
	HasHandicap     int16
	Scholarship     int16
	NoshowCnt       int64
	TotalVisits     int64
	NoshowRate      float64
	LastVisitDate   pgtype.Date
	FirstVisitDate  pgtype.Date
}

type WeatherDay struct {
	Date        pgtype.Date
	MaxTemp     pgtype.Float8
	MinTemp     pgtype.Float8
	PrecipMm    pgtype.Float8
	Weather     pgtype.Int4
	WeatherDesc string
	TempRange   pgtype.Float8
	IsRainy     int16
}
