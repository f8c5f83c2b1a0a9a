package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noshow/config"
	"noshow/tables"
)

func sampleSet(t *testing.T) *tables.Set {
	t.Helper()
	records := sampleRecords(t)
	nhoods, ids := AggregateNeighbourhoods(records)
	appts, err := BuildAppointments(records, ids)
	require.NoError(t, err)
	return &tables.Set{Neighbourhoods: nhoods, Patients: AggregatePatients(records), Appointments: appts}
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet(t)
	m := &tables.Manifest{RunID: "test-run", Tool: toolName}

	require.NoError(t, Export(dir, []string{config.FormatCSV, config.FormatParquet}, set, m))

	for _, format := range []string{tables.FormatCSV, tables.FormatParquet} {
		got, err := tables.ReadSet(dir, format)
		require.NoError(t, err, format)
		assert.Equal(t, set, got, format)
	}

	manifest, err := tables.ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "test-run", manifest.RunID)
	assert.Len(t, manifest.Files, 6)
	assert.Equal(t, len(set.Appointments), manifest.Rows(tables.AppointmentCSVFile))
	assert.Equal(t, len(set.Patients), manifest.Rows(tables.PatientsParquetFile))
	assert.False(t, manifest.CompletedAt.IsZero())
}

func TestExportOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, tables.NeighbourhoodCSVFile)
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	set := sampleSet(t)
	require.NoError(t, Export(dir, []string{config.FormatCSV}, set, &tables.Manifest{}))

	rows, err := tables.ReadCSV(path, tables.NeighbourhoodCodec)
	require.NoError(t, err)
	assert.Len(t, rows, len(set.Neighbourhoods))

	_, err = os.Stat(filepath.Join(dir, tables.AppointmentParquetFile))
	assert.True(t, os.IsNotExist(err), "parquet not requested")
}

func TestExportPartialFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where a file should go makes that one write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, tables.PatientsCSVFile), 0755))

	err := Export(dir, []string{config.FormatCSV}, sampleSet(t), &tables.Manifest{})
	require.ErrorIs(t, err, ErrPartialExport)

	var pe *PartialExportError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{tables.NeighbourhoodCSVFile, tables.AppointmentCSVFile}, pe.Written)
	require.Len(t, pe.Failed, 1)
	assert.Contains(t, pe.Failed, tables.PatientsCSVFile)
	assert.Contains(t, err.Error(), "2 written, 1 failed")

	// written files stay, manifest is withheld
	_, statErr := os.Stat(filepath.Join(dir, tables.AppointmentCSVFile))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, tables.ManifestFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportFailureRemovesPreviousManifest(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet(t)
	require.NoError(t, Export(dir, []string{config.FormatCSV}, set, &tables.Manifest{RunID: "run-1"}))
	_, err := tables.ReadManifest(dir)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, tables.PatientsCSVFile)))
	require.NoError(t, os.Mkdir(filepath.Join(dir, tables.PatientsCSVFile), 0755))

	err = Export(dir, []string{config.FormatCSV}, set, &tables.Manifest{RunID: "run-2"})
	require.ErrorIs(t, err, ErrPartialExport)

	_, statErr := os.Stat(filepath.Join(dir, tables.ManifestFileName))
	assert.True(t, os.IsNotExist(statErr), "run-1 manifest must not describe run-2 files")
}

func TestExportCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, Export(dir, []string{config.FormatParquet}, sampleSet(t), &tables.Manifest{}))

	_, err := os.Stat(filepath.Join(dir, tables.NeighbourhoodParquetFile))
	assert.NoError(t, err)
}
