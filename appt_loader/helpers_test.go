package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"noshow/config"
)

const sourceHeader = "PatientId,AppointmentID,Gender,ScheduledDay,AppointmentDay,Age,Neighbourhood,Scholarship,Hipertension,Diabetes,Alcoholism,Handcap,SMS_received,No-show"

// sampleRows covers the cases the tests lean on: appointment 999 with a
// nine-day lead, patient 42 whose handicap level changes, a blocklisted
// id, a blocklisted neighbourhood and a negative lead time.
var sampleRows = []string{
	"29872499824296.0,999,F,2016-04-20T10:00:00Z,2016-04-29T00:00:00Z,62,JARDIM DA PENHA,0,1,0,0,0,0,Yes",
	"42,1001,M,2016-04-25T08:30:00Z,2016-04-29T00:00:00Z,30,CENTRO,0,0,0,0,0,1,No",
	"42,1002,M,2016-04-26T09:00:00Z,2016-05-02T00:00:00Z,31,CENTRO,1,0,0,0,1,0,No",
	"8.841186448183e+12,1003,F,2016-04-27T14:00:00Z,2016-04-29T00:00:00Z,8,JARDIM DA PENHA,0,0,1,0,0,1,No",
	"77,5642903,F,2016-04-29T18:38:08Z,2016-04-29T00:00:00Z,56,JARDIM DA PENHA,0,0,0,0,0,0,No",
	"78,1004,F,2016-04-29T07:00:00Z,2016-05-03T00:00:00Z,40,PARQUE INDUSTRIAL,0,0,0,0,2,0,Yes",
	"99,1005,F,2016-05-10T07:00:00Z,2016-05-09T00:00:00Z,20,MARIA ORTIZ,0,0,0,0,0,0,No",
}

// writeSourceCSV writes a dataset file with the source header and returns
// its path.
func writeSourceCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.csv")
	content := sourceHeader + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write source CSV: %v", err)
	}
	return path
}

func testConfig(input, outDir string) *config.Config {
	return &config.Config{
		InputPath:                 input,
		OutputDir:                 outDir,
		Formats:                   []string{config.FormatCSV},
		BlocklistedApptIDs:        config.DefaultBlocklistedApptIDs,
		BlocklistedNeighbourhoods: config.DefaultBlocklistedNeighbourhoods,
		MalformedPolicy:           config.PolicyDrop,
		ConsistencyScope:          config.ScopeCleaned,
		HolidayRegion:             config.RegionBrazilEspiritoSanto,
	}
}

// sampleRecords loads, cleans and derives sampleRows with the default
// blocklists.
func sampleRecords(t *testing.T) []CleanedRecord {
	t.Helper()
	raw, err := LoadAppointments(writeSourceCSV(t, sampleRows...))
	require.NoError(t, err)
	cleaned, _ := Clean(raw, NewBlocklist(config.DefaultBlocklistedApptIDs, config.DefaultBlocklistedNeighbourhoods))
	records, _, err := Derive(cleaned, config.PolicyAbort, zap.NewNop())
	require.NoError(t, err)
	return records
}

func findRecord(t *testing.T, records []CleanedRecord, apptID int64) CleanedRecord {
	t.Helper()
	for _, r := range records {
		if r.AppointmentID == apptID {
			return r
		}
	}
	t.Fatalf("appointment %d not found", apptID)
	return CleanedRecord{}
}
