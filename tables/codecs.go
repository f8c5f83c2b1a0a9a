package tables

// File names of the exported tables inside the output directory.
const (
	NeighbourhoodCSVFile = "Neighbourhood.csv"
	PatientsCSVFile      = "Patients.csv"
	AppointmentCSVFile   = "Appointment.csv"
	CalendarCSVFile      = "Calendar.csv"
	WeatherCSVFile       = "Weather.csv"

	NeighbourhoodParquetFile = "neighbourhood.parquet"
	PatientsParquetFile      = "patients.parquet"
	AppointmentParquetFile   = "appointment.parquet"
	CalendarParquetFile      = "calendar.parquet"
	WeatherParquetFile       = "weather.parquet"

	ManifestFileName       = "manifest.json"
	EnrichmentManifestFile = "manifest_enrichment.json"
)

var NeighbourhoodCodec = Codec[NeighbourhoodRow]{
	Header: []string{"nhood_id", "nhood_name", "total_appts", "noshow_rate", "avg_lead_time"},
	Encode: func(r NeighbourhoodRow) []string {
		return []string{
			fmtInt(r.NhoodID),
			r.NhoodName,
			fmtInt(r.TotalAppts),
			fmtFloat(r.NoShowRate),
			fmtFloat(r.AvgLeadTime),
		}
	},
	Decode: func(f *Fields) NeighbourhoodRow {
		return NeighbourhoodRow{
			NhoodID:     f.Int32(0),
			NhoodName:   f.String(1),
			TotalAppts:  f.Int64(2),
			NoShowRate:  f.Float64(3),
			AvgLeadTime: f.Float64(4),
		}
	},
}

var PatientCodec = Codec[PatientRow]{
	Header: []string{
		"patient_id", "gender", "age", "has_hypertension", "has_diabetes",
		"has_alcoholism", "has_handicap", "scholarship", "noshow_cnt",
		"noshow_rate", "last_visit_date", "first_visit_date",
	},
	Encode: func(r PatientRow) []string {
		return []string{
			r.PatientID,
			r.Gender,
			fmtInt(r.Age),
			fmtInt(r.HasHypertension),
			fmtInt(r.HasDiabetes),
			fmtInt(r.HasAlcoholism),
			fmtInt(r.HasHandicap),
			fmtInt(r.Scholarship),
			fmtInt(r.NoShowCnt),
			fmtFloat(r.NoShowRate),
			r.LastVisitDate,
			r.FirstVisitDate,
		}
	},
	Decode: func(f *Fields) PatientRow {
		return PatientRow{
			PatientID:       f.String(0),
			Gender:          f.String(1),
			Age:             f.Int32(2),
			HasHypertension: f.Int32(3),
			HasDiabetes:     f.Int32(4),
			HasAlcoholism:   f.Int32(5),
			HasHandicap:     f.Int32(6),
			Scholarship:     f.Int32(7),
			NoShowCnt:       f.Int64(8),
			NoShowRate:      f.Float64(9),
			LastVisitDate:   f.String(10),
			FirstVisitDate:  f.String(11),
		}
	},
}

var AppointmentCodec = Codec[AppointmentRow]{
	Header: []string{
		"appt_id", "patient_id", "nhood_id", "scheduled_at", "appt_date",
		"scheduled_time", "is_noshow", "sms_received", "lead_time_days",
	},
	Encode: func(r AppointmentRow) []string {
		return []string{
			fmtInt(r.ApptID),
			r.PatientID,
			fmtInt(r.NhoodID),
			r.ScheduledAt,
			r.ApptDate,
			r.ScheduledTime,
			fmtBool(r.IsNoShow),
			fmtInt(r.SMSReceived),
			fmtInt(r.LeadTimeDays),
		}
	},
	Decode: func(f *Fields) AppointmentRow {
		return AppointmentRow{
			ApptID:        f.Int64(0),
			PatientID:     f.String(1),
			NhoodID:       f.Int32(2),
			ScheduledAt:   f.String(3),
			ApptDate:      f.String(4),
			ScheduledTime: f.String(5),
			IsNoShow:      f.Bool(6),
			SMSReceived:   f.Int32(7),
			LeadTimeDays:  f.Int32(8),
		}
	},
}

var CalendarCodec = Codec[CalendarRow]{
	Header: []string{"date", "dow", "month", "is_weekend", "is_holiday", "is_before_holiday", "is_after_holiday"},
	Encode: func(r CalendarRow) []string {
		return []string{
			r.Date,
			fmtInt(r.Dow),
			fmtInt(r.Month),
			fmtInt(r.IsWeekend),
			fmtInt(r.IsHoliday),
			fmtInt(r.IsBeforeHoliday),
			fmtInt(r.IsAfterHoliday),
		}
	},
	Decode: func(f *Fields) CalendarRow {
		return CalendarRow{
			Date:            f.String(0),
			Dow:             f.Int32(1),
			Month:           f.Int32(2),
			IsWeekend:       f.Int32(3),
			IsHoliday:       f.Int32(4),
			IsBeforeHoliday: f.Int32(5),
			IsAfterHoliday:  f.Int32(6),
		}
	},
}

var WeatherCodec = Codec[WeatherRow]{
	Header: []string{"date", "max_temp", "min_temp", "precip_mm", "weather", "weather_desc", "temp_range", "is_rainy"},
	Encode: func(r WeatherRow) []string {
		return []string{
			r.Date,
			fmtOptFloat(r.MaxTemp),
			fmtOptFloat(r.MinTemp),
			fmtOptFloat(r.PrecipMM),
			fmtOptInt(r.Weather),
			r.WeatherDesc,
			fmtOptFloat(r.TempRange),
			fmtInt(r.IsRainy),
		}
	},
	Decode: func(f *Fields) WeatherRow {
		return WeatherRow{
			Date:        f.String(0),
			MaxTemp:     f.OptFloat64(1),
			MinTemp:     f.OptFloat64(2),
			PrecipMM:    f.OptFloat64(3),
			Weather:     f.OptInt32(4),
			WeatherDesc: f.String(5),
			TempRange:   f.OptFloat64(6),
			IsRainy:     f.Int32(7),
		}
	},
}
