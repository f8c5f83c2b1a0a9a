package tables

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64Ptr(f float64) *float64 { return &f }

func i32Ptr(i int32) *int32 { return &i }

func testSet() *Set {
	return &Set{
		Neighbourhoods: []NeighbourhoodRow{
			{NhoodID: 1, NhoodName: "JARDIM CAMBURI", TotalAppts: 2, NoShowCount: 1, NoShowRate: 0.5, AvgLeadTime: 5.5},
			{NhoodID: 2, NhoodName: "MARIA ORTIZ, SUL", TotalAppts: 1, NoShowCount: 1, NoShowRate: 1, AvgLeadTime: -1},
		},
		Patients: []PatientRow{
			{PatientID: "29872499824296", Gender: "F", Age: 62, HasHypertension: 1, HasHandicap: 2, NoShowCnt: 1, TotalVisits: 2, NoShowRate: 0.5, LastVisitDate: "2016-05-20", FirstVisitDate: "2016-04-29"},
			{PatientID: "93779.52927", Gender: "M", Age: 0, NoShowCnt: 1, TotalVisits: 1, NoShowRate: 1, LastVisitDate: "2016-05-02", FirstVisitDate: "2016-05-02"},
		},
		Appointments: []AppointmentRow{
			{ApptID: 5642903, PatientID: "29872499824296", NhoodID: 1, ScheduledAt: "2016-04-29T18:38:08Z", ApptDate: "2016-04-29", ScheduledTime: "18:38", IsNoShow: false, SMSReceived: 0, LeadTimeDays: 0},
			{ApptID: 5700000, PatientID: "93779.52927", NhoodID: 2, ScheduledAt: "2016-05-03T08:00:00Z", ApptDate: "2016-05-02", ScheduledTime: "08:00", IsNoShow: true, SMSReceived: 1, LeadTimeDays: -1},
			{ApptID: 5710001, PatientID: "29872499824296", NhoodID: 1, ScheduledAt: "2016-05-09T07:15:00-03:00", ApptDate: "2016-05-20", ScheduledTime: "07:15", IsNoShow: true, SMSReceived: 1, LeadTimeDays: 11},
		},
	}
}

func writeSet(t *testing.T, dir string, s *Set) {
	t.Helper()
	require.NoError(t, WriteCSV(filepath.Join(dir, NeighbourhoodCSVFile), NeighbourhoodCodec, s.Neighbourhoods))
	require.NoError(t, WriteCSV(filepath.Join(dir, PatientsCSVFile), PatientCodec, s.Patients))
	require.NoError(t, WriteCSV(filepath.Join(dir, AppointmentCSVFile), AppointmentCodec, s.Appointments))
	require.NoError(t, WriteParquet(filepath.Join(dir, NeighbourhoodParquetFile), s.Neighbourhoods))
	require.NoError(t, WriteParquet(filepath.Join(dir, PatientsParquetFile), s.Patients))
	require.NoError(t, WriteParquet(filepath.Join(dir, AppointmentParquetFile), s.Appointments))
}

func TestSetRoundTripParquet(t *testing.T) {
	dir := t.TempDir()
	want := testSet()
	writeSet(t, dir, want)

	got, err := ReadSet(dir, FormatParquet)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSetRoundTripCSV(t *testing.T) {
	dir := t.TempDir()
	want := testSet()
	writeSet(t, dir, want)

	got, err := ReadSet(dir, FormatCSV)
	require.NoError(t, err)

	// Columns outside the CSV layout are recomputed from the facts.
	assert.Equal(t, want, got)
}

func TestWriteCSVHeaderAndValues(t *testing.T) {
	dir := t.TempDir()
	s := testSet()
	path := filepath.Join(dir, AppointmentCSVFile)
	require.NoError(t, WriteCSV(path, AppointmentCodec, s.Appointments))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "appt_id,patient_id,nhood_id,scheduled_at,appt_date,scheduled_time,is_noshow,sms_received,lead_time_days\n" +
		"5642903,29872499824296,1,2016-04-29T18:38:08Z,2016-04-29,18:38,0,0,0\n" +
		"5700000,93779.52927,2,2016-05-03T08:00:00Z,2016-05-02,08:00,1,1,-1\n" +
		"5710001,29872499824296,1,2016-05-09T07:15:00-03:00,2016-05-20,07:15,1,1,11\n"
	assert.Equal(t, want, string(data))
}

func TestReadCSVReorderedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.csv")
	content := "\ufeffavg_lead_time,NHOOD_NAME,nhood_id,extra,total_appts,noshow_rate\n2.5,CENTRO,7,x,4,0.25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadCSV(path, NeighbourhoodCodec)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, NeighbourhoodRow{NhoodID: 7, NhoodName: "CENTRO", TotalAppts: 4, NoShowRate: 0.25, AvgLeadTime: 2.5}, rows[0])
}

func TestReadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.csv")
	require.NoError(t, os.WriteFile(missing, []byte("nhood_id,nhood_name\n1,X\n"), 0644))
	_, err := ReadCSV(missing, NeighbourhoodCodec)
	assert.ErrorContains(t, err, `missing column "total_appts"`)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("nhood_id,nhood_name,total_appts,noshow_rate,avg_lead_time\n1,X,many,0,0\n"), 0644))
	_, err = ReadCSV(bad, NeighbourhoodCodec)
	assert.ErrorContains(t, err, "line 2")
	assert.ErrorContains(t, err, "column total_appts")

	_, err = ReadCSV(filepath.Join(dir, "nope.csv"), NeighbourhoodCodec)
	assert.Error(t, err)
}

func TestWeatherCSVOptionalValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), WeatherCSVFile)
	rows := []WeatherRow{
		{Date: "2016-04-29", MaxTemp: f64Ptr(29.1), MinTemp: f64Ptr(21.4), PrecipMM: f64Ptr(0), Weather: i32Ptr(3), WeatherDesc: "Overcast", TempRange: f64Ptr(29.1 - 21.4), IsRainy: 0},
		{Date: "2016-04-30", WeatherDesc: "Unknown"},
	}
	require.NoError(t, WriteCSV(path, WeatherCodec, rows))

	got, err := ReadCSV(path, WeatherCodec)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{
		RunID:       "run-1",
		Tool:        "appt_loader",
		Source:      "in.csv",
		StartedAt:   time.Date(2016, 6, 1, 10, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2016, 6, 1, 10, 0, 5, 0, time.UTC),
		Files:       []ManifestFile{{Name: NeighbourhoodCSVFile, Format: FormatCSV, Rows: 80}},
	}
	require.NoError(t, WriteManifest(dir, m))

	got, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, m, got)
	assert.Equal(t, 80, got.Rows(NeighbourhoodCSVFile))
	assert.Equal(t, -1, got.Rows(PatientsCSVFile))
}

func TestFillCounts(t *testing.T) {
	s := testSet()
	for i := range s.Neighbourhoods {
		s.Neighbourhoods[i].NoShowCount = 0
	}
	for i := range s.Patients {
		s.Patients[i].TotalVisits = 0
	}
	s.FillCounts()
	assert.Equal(t, testSet(), s)
}

func TestReadSetUnknownFormat(t *testing.T) {
	_, err := ReadSet(t.TempDir(), "xlsx")
	assert.Error(t, err)
}

func TestRemoveManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	require.NoError(t, RemoveManifestFile(path), "missing manifest is fine")

	require.NoError(t, WriteManifest(dir, &Manifest{RunID: "r"}))
	require.NoError(t, RemoveManifestFile(path))
	_, err := ReadManifest(dir)
	assert.Error(t, err)
}

func TestParquetWriterBatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), CalendarParquetFile)
	rows := []CalendarRow{
		{Date: "2016-04-29", Dow: 4, Month: 4},
		{Date: "2016-04-30", Dow: 5, Month: 4, IsWeekend: 1, IsBeforeHoliday: 1},
		{Date: "2016-05-01", Dow: 6, Month: 5, IsWeekend: 1, IsHoliday: 1},
	}

	w, err := NewParquetWriter[CalendarRow](path)
	require.NoError(t, err)
	_, err = w.Write(rows[:2])
	require.NoError(t, err)
	_, err = w.Write(rows[2:])
	require.NoError(t, err)
	assert.Equal(t, 3, w.Count())
	require.NoError(t, w.Close())

	got, err := ReadParquet[CalendarRow](path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
