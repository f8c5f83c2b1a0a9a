package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// NOSHOW_OUTPUT_DIR or NOSHOW_WEATHER_LOCATION_LATITUDE.
const EnvPrefix = "NOSHOW"

// DefaultConfigName is looked up in the working directory when no
// explicit --config file is given.
const DefaultConfigName = "noshow"

// Malformed row policies.
const (
	PolicyDrop  = "drop"
	PolicyAbort = "abort"
)

// Consistency checker scopes.
const (
	ScopeCleaned = "cleaned"
	ScopeRaw     = "raw"
)

// Export formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Log levels and encodings accepted by logging.New.
var (
	LogLevels    = []string{"debug", "info", "warn", "error"}
	LogEncodings = []string{"console", "json"}
)

// Holiday regions understood by calendar_weather.
const (
	RegionBrazil              = "BR"
	RegionBrazilEspiritoSanto = "BR-ES"
)

// Config is the complete run configuration. One value is built per
// invocation and handed to every stage; nothing reads it globally.
type Config struct {
	InputPath                 string   `mapstructure:"input_path" yaml:"input_path"`
	OutputDir                 string   `mapstructure:"output_dir" yaml:"output_dir"`
	Formats                   []string `mapstructure:"formats" yaml:"formats"`
	BlocklistedApptIDs        []int64  `mapstructure:"blocklisted_appt_ids" yaml:"blocklisted_appt_ids"`
	BlocklistedNeighbourhoods []string `mapstructure:"blocklisted_neighbourhoods" yaml:"blocklisted_neighbourhoods"`
	MalformedPolicy           string   `mapstructure:"malformed_policy" yaml:"malformed_policy"`
	ConsistencyScope          string   `mapstructure:"consistency_scope" yaml:"consistency_scope"`
	HolidayRegion             string   `mapstructure:"holiday_region" yaml:"holiday_region"`

	WeatherLocation Location       `mapstructure:"weather_location" yaml:"weather_location"`
	Weather         WeatherService `mapstructure:"weather" yaml:"weather"`

	PgURL string `mapstructure:"pg_url" yaml:"pg_url,omitempty"`
	Log   Log    `mapstructure:"log" yaml:"log"`
}

// Location is the single reference point weather is fetched for.
type Location struct {
	Latitude  float64 `mapstructure:"latitude" yaml:"latitude"`
	Longitude float64 `mapstructure:"longitude" yaml:"longitude"`
	Timezone  string  `mapstructure:"timezone" yaml:"timezone"`
}

// WeatherService configures the archive endpoint.
type WeatherService struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type Log struct {
	Level    string `mapstructure:"level" yaml:"level"`
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
}

// Known data-entry errors in the May 2016 dataset.
var (
	DefaultBlocklistedApptIDs        = []int64{5642903, 5642503, 5642549, 5642828, 5642494}
	DefaultBlocklistedNeighbourhoods = []string{"PARQUE INDUSTRIAL"}
)

// SetDefaults registers every key so that environment overrides and
// Unmarshal see the full key set even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input_path", "KaggleV2-May-2016.csv")
	v.SetDefault("output_dir", ".")
	v.SetDefault("formats", []string{FormatCSV})
	v.SetDefault("blocklisted_appt_ids", DefaultBlocklistedApptIDs)
	v.SetDefault("blocklisted_neighbourhoods", DefaultBlocklistedNeighbourhoods)
	v.SetDefault("malformed_policy", PolicyDrop)
	v.SetDefault("consistency_scope", ScopeCleaned)
	v.SetDefault("holiday_region", RegionBrazilEspiritoSanto)

	// Vitória (ES, Brazil)
	v.SetDefault("weather_location.latitude", -20.3155)
	v.SetDefault("weather_location.longitude", -40.3128)
	v.SetDefault("weather_location.timezone", "America/Sao_Paulo")
	v.SetDefault("weather.base_url", "https://archive-api.open-meteo.com/v1/archive")
	v.SetDefault("weather.timeout", 30*time.Second)

	v.SetDefault("pg_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
}

// NewViper returns a viper instance with defaults, environment binding
// and, when present, the YAML config file applied. An explicit
// configFile that cannot be read is an error; a missing default file is not.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.MalformedPolicy = strings.ToLower(strings.TrimSpace(c.MalformedPolicy))
	c.ConsistencyScope = strings.ToLower(strings.TrimSpace(c.ConsistencyScope))
	c.HolidayRegion = strings.ToUpper(strings.TrimSpace(c.HolidayRegion))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Encoding = strings.ToLower(strings.TrimSpace(c.Log.Encoding))

	formats := c.Formats[:0]
	for _, f := range c.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	c.Formats = formats
}

// Validate rejects empty paths and unknown enum values.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("formats must name at least one of %q, %q", FormatCSV, FormatParquet)
	}
	for _, f := range c.Formats {
		if f != FormatCSV && f != FormatParquet {
			return fmt.Errorf("formats: unknown format %q", f)
		}
	}
	switch c.MalformedPolicy {
	case PolicyDrop, PolicyAbort:
	default:
		return fmt.Errorf("malformed_policy must be %q or %q, got %q", PolicyDrop, PolicyAbort, c.MalformedPolicy)
	}
	switch c.ConsistencyScope {
	case ScopeCleaned, ScopeRaw:
	default:
		return fmt.Errorf("consistency_scope must be %q or %q, got %q", ScopeCleaned, ScopeRaw, c.ConsistencyScope)
	}
	switch c.HolidayRegion {
	case RegionBrazil, RegionBrazilEspiritoSanto:
	default:
		return fmt.Errorf("holiday_region must be %q or %q, got %q", RegionBrazil, RegionBrazilEspiritoSanto, c.HolidayRegion)
	}
	if c.WeatherLocation.Latitude < -90 || c.WeatherLocation.Latitude > 90 {
		return fmt.Errorf("weather_location.latitude out of range: %v", c.WeatherLocation.Latitude)
	}
	if c.WeatherLocation.Longitude < -180 || c.WeatherLocation.Longitude > 180 {
		return fmt.Errorf("weather_location.longitude out of range: %v", c.WeatherLocation.Longitude)
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("weather.timeout must be positive, got %s", c.Weather.Timeout)
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(LogLevels, ", "), c.Log.Level)
	}
	if !slices.Contains(LogEncodings, c.Log.Encoding) {
		return fmt.Errorf("log.encoding must be one of %s, got %q", strings.Join(LogEncodings, ", "), c.Log.Encoding)
	}
	return nil
}

// HasFormat reports whether exports in format f are enabled.
func (c *Config) HasFormat(f string) bool {
	return slices.Contains(c.Formats, f)
}

// BindFlags overrides config keys with the flags the user set. keys maps
// flag names to config keys; unset flags leave the file and environment
// values in place.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok || !f.Changed || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind flag --%s: %w", f.Name, bindErr)
		}
	})
	return err
}
