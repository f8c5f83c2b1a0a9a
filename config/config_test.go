package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "noshow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "KaggleV2-May-2016.csv", cfg.InputPath)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, []string{FormatCSV}, cfg.Formats)
	assert.Equal(t, DefaultBlocklistedApptIDs, cfg.BlocklistedApptIDs)
	assert.Equal(t, DefaultBlocklistedNeighbourhoods, cfg.BlocklistedNeighbourhoods)
	assert.Equal(t, PolicyDrop, cfg.MalformedPolicy)
	assert.Equal(t, ScopeCleaned, cfg.ConsistencyScope)
	assert.Equal(t, RegionBrazilEspiritoSanto, cfg.HolidayRegion)
	assert.InDelta(t, -20.3155, cfg.WeatherLocation.Latitude, 1e-9)
	assert.InDelta(t, -40.3128, cfg.WeatherLocation.Longitude, 1e-9)
	assert.Equal(t, "America/Sao_Paulo", cfg.WeatherLocation.Timezone)
	assert.Equal(t, 30*time.Second, cfg.Weather.Timeout)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfigFile(t, `
input_path: data/raw.csv
output_dir: out
formats: [CSV, parquet, csv]
blocklisted_appt_ids: [1, 2]
blocklisted_neighbourhoods: ["X"]
malformed_policy: Abort
weather_location:
  latitude: 10.5
  longitude: 20.25
`)
	t.Setenv("NOSHOW_OUTPUT_DIR", "out-env")
	t.Setenv("NOSHOW_CONSISTENCY_SCOPE", "raw")

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "data/raw.csv", cfg.InputPath)
	assert.Equal(t, "out-env", cfg.OutputDir)
	assert.Equal(t, []string{FormatCSV, FormatParquet}, cfg.Formats)
	assert.Equal(t, []int64{1, 2}, cfg.BlocklistedApptIDs)
	assert.Equal(t, []string{"X"}, cfg.BlocklistedNeighbourhoods)
	assert.Equal(t, PolicyAbort, cfg.MalformedPolicy)
	assert.Equal(t, ScopeRaw, cfg.ConsistencyScope)
	assert.InDelta(t, 10.5, cfg.WeatherLocation.Latitude, 1e-9)
	assert.True(t, cfg.HasFormat(FormatParquet))
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("NOSHOW_LOG_LEVEL", "verbose")
	v, err := NewViper("")
	require.NoError(t, err)
	_, err = Load(v)
	assert.ErrorContains(t, err, "log.level")
}

func TestNewViperMissingExplicitFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			InputPath:        "in.csv",
			OutputDir:        ".",
			Formats:          []string{FormatCSV},
			MalformedPolicy:  PolicyDrop,
			ConsistencyScope: ScopeCleaned,
			HolidayRegion:    RegionBrazil,
			Weather:          WeatherService{Timeout: time.Second},
			Log:              Log{Level: "info", Encoding: "console"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input", func(c *Config) { c.InputPath = "" }},
		{"empty output", func(c *Config) { c.OutputDir = "" }},
		{"no formats", func(c *Config) { c.Formats = nil }},
		{"unknown format", func(c *Config) { c.Formats = []string{"xlsx"} }},
		{"unknown policy", func(c *Config) { c.MalformedPolicy = "ignore" }},
		{"unknown scope", func(c *Config) { c.ConsistencyScope = "both" }},
		{"unknown region", func(c *Config) { c.HolidayRegion = "US" }},
		{"latitude", func(c *Config) { c.WeatherLocation.Latitude = 91 }},
		{"longitude", func(c *Config) { c.WeatherLocation.Longitude = -181 }},
		{"timeout", func(c *Config) { c.Weather.Timeout = 0 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"empty log level", func(c *Config) { c.Log.Level = "" }},
		{"unknown log encoding", func(c *Config) { c.Log.Encoding = "logfmt" }},
	}

	require.NoError(t, base().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBindFlags(t *testing.T) {
	path := writeConfigFile(t, "output_dir: from-file\nmalformed_policy: abort\n")
	v, err := NewViper(path)
	require.NoError(t, err)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out", "", "")
	flags.String("malformed", "", "")
	flags.StringSlice("format", nil, "")
	require.NoError(t, flags.Parse([]string{"--out", "from-flag", "--format", "csv,parquet"}))

	keys := map[string]string{"out": "output_dir", "malformed": "malformed_policy", "format": "formats"}
	require.NoError(t, BindFlags(v, flags, keys))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.OutputDir)
	assert.Equal(t, PolicyAbort, cfg.MalformedPolicy, "unset flag keeps the file value")
	assert.Equal(t, []string{FormatCSV, FormatParquet}, cfg.Formats)
}
