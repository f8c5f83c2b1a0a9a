package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noshow/config"
	"noshow/tables"
)

func runCLI(t *testing.T, provider WeatherProvider, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(*config.Config) WeatherProvider { return provider })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLIEnrich(t *testing.T) {
	dir := t.TempDir()
	writeAppointments(t, dir, "2016-04-29", "2016-05-03")

	out, err := runCLI(t, &stubProvider{}, "enrich", "--out", dir, "--region", "br")
	require.NoError(t, err)
	assert.Contains(t, out, "Done in")

	_, err = os.Stat(filepath.Join(dir, tables.WeatherCSVFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, tables.WeatherParquetFile))
	assert.True(t, os.IsNotExist(err), "parquet not enabled by default")
}

func TestCLIEnrichBadRegion(t *testing.T) {
	_, err := runCLI(t, &stubProvider{}, "enrich", "--out", t.TempDir(), "--region", "AR")
	assert.ErrorContains(t, err, "holiday_region")
}

func TestCLIHolidays(t *testing.T) {
	out, err := runCLI(t, nil, "holidays", "--year", "2020", "--region", "BR-ES")
	require.NoError(t, err)
	assert.Contains(t, out, "Holidays 2020 (BR-ES)")
	assert.Contains(t, out, "2020-04-20")
	assert.Contains(t, out, "Nossa Senhora da Penha")
	assert.Contains(t, out, "2020-04-10")
}

func TestCLIPgRequiresURL(t *testing.T) {
	_, err := runCLI(t, nil, "pg", "--out", t.TempDir())
	assert.ErrorContains(t, err, "pg_url is required")
}
