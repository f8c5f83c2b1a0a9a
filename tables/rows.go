package tables

// Row types for every exported table. The same structs back the CSV
// files, the Parquet files and the PostgreSQL COPY parameters, so a
// reload from either file format reproduces exactly what was computed.
//
// Dates are stored as YYYY-MM-DD strings and timestamps as RFC3339
// strings rather than Parquet logical types: the CSV and Parquet exports
// then carry byte-identical values and DuckDB/pandas both cast them
// cheaply on read.

// NeighbourhoodRow is one row of the neighbourhood dimension.
// NhoodID is a dense surrogate key assigned in name order.
type NeighbourhoodRow struct {
	NhoodID     int32   `parquet:"nhood_id"`
	NhoodName   string  `parquet:"nhood_name,dict"`
	TotalAppts  int64   `parquet:"total_appts"`
	NoShowCount int64   `parquet:"noshow_count"` // Parquet/PG only
	NoShowRate  float64 `parquet:"noshow_rate"`
	AvgLeadTime float64 `parquet:"avg_lead_time"`
}

// PatientRow is one row of the patient dimension. Static attributes are
// the first observed values for the patient; see the consistency report
// for patients whose handicap level drifts.
type PatientRow struct {
	PatientID       string  `parquet:"patient_id"`
	Gender          string  `parquet:"gender,dict"`
	Age             int32   `parquet:"age"`
	HasHypertension int32   `parquet:"has_hypertension"`
	HasDiabetes     int32   `parquet:"has_diabetes"`
	HasAlcoholism   int32   `parquet:"has_alcoholism"`
	HasHandicap     int32   `parquet:"has_handicap"` // level 0-4, not a flag
	Scholarship     int32   `parquet:"scholarship"`
	NoShowCnt       int64   `parquet:"noshow_cnt"`
	TotalVisits     int64   `parquet:"total_visits"` // Parquet/PG only
	NoShowRate      float64 `parquet:"noshow_rate"`
	LastVisitDate   string  `parquet:"last_visit_date"`
	FirstVisitDate  string  `parquet:"first_visit_date"`
}

// AppointmentRow is one row of the appointment fact table.
type AppointmentRow struct {
	ApptID        int64  `parquet:"appt_id"`
	PatientID     string `parquet:"patient_id"`
	NhoodID       int32  `parquet:"nhood_id"`
	ScheduledAt   string `parquet:"scheduled_at"`
	ApptDate      string `parquet:"appt_date"`
	ScheduledTime string `parquet:"scheduled_time"`
	IsNoShow      bool   `parquet:"is_noshow"` // true: the patient did not attend
	SMSReceived   int32  `parquet:"sms_received"`
	LeadTimeDays  int32  `parquet:"lead_time_days"`
}

// CalendarRow is one day of the enrichment calendar. Dow follows the
// Monday=0 … Sunday=6 convention.
type CalendarRow struct {
	Date            string `parquet:"date"`
	Dow             int32  `parquet:"dow"`
	Month           int32  `parquet:"month"`
	IsWeekend       int32  `parquet:"is_weekend"`
	IsHoliday       int32  `parquet:"is_holiday"`
	IsBeforeHoliday int32  `parquet:"is_before_holiday"`
	IsAfterHoliday  int32  `parquet:"is_after_holiday"`
}

// WeatherRow is one day of archive weather. Measurements the archive did
// not report stay nil.
type WeatherRow struct {
	Date        string   `parquet:"date"`
	MaxTemp     *float64 `parquet:"max_temp,optional"`
	MinTemp     *float64 `parquet:"min_temp,optional"`
	PrecipMM    *float64 `parquet:"precip_mm,optional"`
	Weather     *int32   `parquet:"weather,optional"` // WMO code
	WeatherDesc string   `parquet:"weather_desc,dict"`
	TempRange   *float64 `parquet:"temp_range,optional"`
	IsRainy     int32    `parquet:"is_rainy"`
}

// Set groups the three core tables of one pipeline run.
type Set struct {
	Neighbourhoods []NeighbourhoodRow
	Patients       []PatientRow
	Appointments   []AppointmentRow
}
