package db

import (
	"context"
)

// iteratorForCopyAppointments implements pgx.CopyFromSource.
type iteratorForCopyAppointments struct {
	rows                 []CopyAppointmentsParams
	skippedFirstNextCall bool
}

func (r *iteratorForCopyAppointments) Next() bool {
	if len(r.rows) == 0 {
		return false
	}
	if !r.skippedFirstNextCall {
		r.skippedFirstNextCall = true
		return true
	}
	r.rows = r.rows[1:]
	return len(r.rows) > 0
}

func (r iteratorForCopyAppointments) Values() ([]interface{}, error) {
	return []interface{}{
		r.rows[0].ApptID,
		r.rows[0].PatientID,
		r.rows[0].NhoodID,
		r.rows[0].ScheduledAt,
		r.rows[0].ApptDate,
		r.rows[0].ScheduledTime,
		r.rows[0].IsNoshow,
		r.rows[0].SmsReceived,
		r.rows[0].LeadTimeDays,
	}, nil
}

func (r iteratorForCopyAppointments) Err() error {
	return nil
}

func (q *Queries) CopyAppointments(ctx context.Context, arg []CopyAppointmentsParams) (int64, error) {
	return q.db.CopyFrom(ctx, []string{"appointments"}, []string{"appt_id", "patient_id", "nhood_id", "scheduled_at", "appt_date", "scheduled_time", "is_noshow", "sms_received", "lead_time_days"}, &iteratorForCopyAppointments{rows: arg})
}

// iteratorForCopyCalendarDays implements pgx.CopyFromSource.
type iteratorForCopyCalendarDays struct {
	rows                 []CopyCalendarDaysParams
	skippedFirstNextCall bool
}

func (r *iteratorForCopyCalendarDays) Next() bool {
	if len(r.rows) == 0 {
		return false
	}
	if !r.skippedFirstNextCall {
		r.skippedFirstNextCall = true
		return true
	}
	r.rows = r.rows[1:]
	return len(r.rows) > 0
}

func (r iteratorForCopyCalendarDays) Values() ([]interface{}, error) {
	return []interface{}{
		r.rows[0].Date,
		r.rows[0].Dow,
		r.rows[0].Month,
		r.rows[0].IsWeekend,
		r.rows[0].IsHoliday,
		r.rows[0].IsBeforeHoliday,
		r.rows[0].IsAfterHoliday,
	}, nil
}

func (r iteratorForCopyCalendarDays) Err() error {
	return nil
}

func (q *Queries) CopyCalendarDays(ctx context.Context, arg []CopyCalendarDaysParams) (int64, error) {
	return q.db.CopyFrom(ctx, []string{"calendar_days"}, []string{"date", "dow", "month", "is_weekend", "is_holiday", "is_before_holiday", "is_after_holiday"}, &iteratorForCopyCalendarDays{rows: arg})
}

// iteratorForCopyNeighbourhoods implements pgx.CopyFromSource.
type iteratorForCopyNeighbourhoods struct {
	rows                 []CopyNeighbourhoodsParams
	skippedFirstNextCall bool
}

func (r *iteratorForCopyNeighbourhoods) Next() bool {
	if len(r.rows) == 0 {
		return false
	}
	if !r.skippedFirstNextCall {
		r.skippedFirstNextCall = true
		return true
	}
	r.rows = r.rows[1:]
	return len(r.rows) > 0
}

func (r iteratorForCopyNeighbourhoods) Values() ([]interface{}, error) {
	return []interface{}{
		r.rows[0].NhoodID,
		r.rows[0].NhoodName,
		r.rows[0].TotalAppts,
		r.rows[0].NoshowCount,
		r.rows[0].NoshowRate,
		r.rows[0].AvgLeadTime,
	}, nil
}

func (r iteratorForCopyNeighbourhoods) Err() error {
	return nil
}

func (q *Queries) CopyNeighbourhoods(ctx context.Context, arg []CopyNeighbourhoodsParams) (int64, error) {
	return q.db.CopyFrom(ctx, []string{"neighbourhoods"}, []string{"nhood_id", "nhood_name", "total_appts", "noshow_count", "noshow_rate", "avg_lead_time"}, &iteratorForCopyNeighbourhoods{rows: arg})
}

// iteratorForCopyPatients implements pgx.CopyFromSource.
type iteratorForCopyPatients struct {
	rows                 []CopyPatientsParams
	skippedFirstNextCall bool
}

func (r *iteratorForCopyPatients) Next() bool {
	if len(r.rows) == 0 {
		return false
	}
	if !r.skippedFirstNextCall {
		r.skippedFirstNextCall = true
		return true
	}
	r.rows = r.rows[1:]
	return len(r.rows) > 0
}

func (r iteratorForCopyPatients) Values() ([]interface{}, error) {
	return []interface{}{
		r.rows[0].PatientID,
		r.rows[0].Gender,
		r.rows[0].Age,
		r.rows[0].HasHypertension,
		r.rows[0].HasDiabetes,
		r.rows[0].HasAlcoholism,
		r.rows[0].HasHandicap,
		r.rows[0].Scholarship,
		r.rows[0].NoshowCnt,
		r.rows[0].TotalVisits,
		r.rows[0].NoshowRate,
		r.rows[0].LastVisitDate,
		r.rows[0].FirstVisitDate,
	}, nil
}

func (r iteratorForCopyPatients) Err() error {
	return nil
}

func (q *Queries) CopyPatients(ctx context.Context, arg []CopyPatientsParams) (int64, error) {
	return q.db.CopyFrom(ctx, []string{"patients"}, []string{"patient_id", "gender", "age", "has_hypertension", "has_diabetes", "has_alcoholism", "has_handicap", "scholarship", "noshow_cnt", "total_visits", "noshow_rate", "last_visit_date", "first_visit_date"}, &iteratorForCopyPatients{rows: arg})
}

// iteratorForCopyWeatherDays implements pgx.CopyFromSource.
type iteratorForCopyWeatherDays struct {
	rows                 []CopyWeatherDaysParams
	skippedFirstNextCall bool
}

func (r *iteratorForCopyWeatherDays) Next() bool {
	if len(r.rows) == 0 {
		return false
	}
	if !r.skippedFirstNextCall {
		r.skippedFirstNextCall = true
		return true
	}
	r.rows = r.rows[1:]
	return len(r.rows) > 0
}

func (r iteratorForCopyWeatherDays) Values() ([]interface{}, error) {
	return []interface{}{
		r.rows[0].Date,
		r.rows[0].MaxTemp,
		r.rows[0].MinTemp,
		r.rows[0].PrecipMm,
		r.rows[0].Weather,
		r.rows[0].WeatherDesc,
		r.rows[0].TempRange,
		r.rows[0].IsRainy,
	}, nil
}

func (r iteratorForCopyWeatherDays) Err() error {
	return nil
}

func (q *Queries) CopyWeatherDays(ctx context.Context, arg []CopyWeatherDaysParams) (int64, error) {
	return q.db.CopyFrom(ctx, []string{"weather_days"}, []string{"date", "max_temp", "min_temp", "precip_mm", "weather", "weather_desc", "temp_range", "is_rainy"}, &iteratorForCopyWeatherDays{rows: arg})
}
