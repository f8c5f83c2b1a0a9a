package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type CopyAppointmentsParams struct {
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

type CopyCalendarDaysParams struct {
	Date            pgtype.Date
	Dow             int16
	Month           int16
	IsWeekend       int16
	IsHoliday       int16
	IsBeforeHoliday int16
	IsAfterHoliday  int16
}

type CopyNeighbourhoodsParams struct {
	NhoodID     int32
	NhoodName   string
	TotalAppts  int64
	NoshowCount int64
	NoshowRate  float64
	AvgLeadTime float64
}

type CopyPatientsParams struct {
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

type CopyWeatherDaysParams struct {
	Date        pgtype.Date
	MaxTemp     pgtype.Float8
	MinTemp     pgtype.Float8
	PrecipMm    pgtype.Float8
	Weather     pgtype.Int4
	WeatherDesc string
	TempRange   pgtype.Float8
	IsRainy     int16
}

const countAppointments = `-- name: CountAppointments :one
SELECT count(*) FROM appointments
`

func (q *Queries) CountAppointments(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countAppointments)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countCalendarDays = `-- name: CountCalendarDays :one
SELECT count(*) FROM calendar_days
`

func (q *Queries) CountCalendarDays(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countCalendarDays)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countNeighbourhoods = `-- name: CountNeighbourhoods :one
SELECT count(*) FROM neighbourhoods
`

func (q *Queries) CountNeighbourhoods(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countNeighbourhoods)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countPatients = `-- name: CountPatients :one
SELECT count(*) FROM patients
`

func (q *Queries) CountPatients(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countPatients)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countWeatherDays = `-- name: CountWeatherDays :one
SELECT count(*) FROM weather_days
`

func (q *Queries) CountWeatherDays(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countWeatherDays)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getNeighbourhoodByName = `-- name: GetNeighbourhoodByName :one
SELECT nhood_id, nhood_name, total_appts, noshow_count, noshow_rate, avg_lead_time
FROM neighbourhoods
WHERE nhood_name = $1
`

func (q *Queries) GetNeighbourhoodByName(ctx context.Context, nhoodName string) (Neighbourhood, error) {
	row := q.db.QueryRow(ctx, getNeighbourhoodByName, nhoodName)
	var i Neighbourhood
	err := row.Scan(
		&i.NhoodID,
		&i.NhoodName,
		&i.TotalAppts,
		&i.NoshowCount,
		&i.NoshowRate,
		&i.AvgLeadTime,
	)
	return i, err
}

const getPatient = `-- name: GetPatient :one
SELECT patient_id, gender, age, has_handicap, noshow_cnt, total_visits, noshow_rate,
       first_visit_date, last_visit_date
FROM patients
WHERE patient_id = $1
`

type GetPatientRow struct {
	PatientID      string
	Gender         string
	Age            int32
	HasHandicap    int16
	NoshowCnt      int64
	TotalVisits    int64
	NoshowRate     float64
	FirstVisitDate pgtype.Date
	LastVisitDate  pgtype.Date
}

func (q *Queries) GetPatient(ctx context.Context, patientID string) (GetPatientRow, error) {
	row := q.db.QueryRow(ctx, getPatient, patientID)
	var i GetPatientRow
	err := row.Scan(
		&i.PatientID,
		&i.Gender,
		&i.Age,
		&i.HasHandicap,
		&i.NoshowCnt,
		&i.TotalVisits,
		&i.NoshowRate,
		&i.FirstVisitDate,
		&i.LastVisitDate,
	)
	return i, err
}

const listHolidayDates = `-- name: ListHolidayDates :many
SELECT date FROM calendar_days WHERE is_holiday = 1 ORDER BY date
`

func (q *Queries) ListHolidayDates(ctx context.Context) ([]pgtype.Date, error) {
	rows, err := q.db.Query(ctx, listHolidayDates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []pgtype.Date
	for rows.Next() {
		var date pgtype.Date
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		items = append(items, date)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const truncateCoreTables = `-- name: TruncateCoreTables :exec
TRUNCATE appointments, patients, neighbourhoods
`

func (q *Queries) TruncateCoreTables(ctx context.Context) error {
	_, err := q.db.Exec(ctx, truncateCoreTables)
	return err
}

const truncateEnrichmentTables = `-- name: TruncateEnrichmentTables :exec
TRUNCATE calendar_days, weather_days
`

func (q *Queries) TruncateEnrichmentTables(ctx context.Context) error {
	_, err := q.db.Exec(ctx, truncateEnrichmentTables)
	return err
}
