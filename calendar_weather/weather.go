package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"noshow/config"
	"noshow/tables"
)

// ErrExternalService wraps every weather fetch failure: transport errors,
// non-2xx responses and bodies that do not decode into the daily series.
var ErrExternalService = errors.New("external weather service failure")

// DailyWeather is one day as reported by a provider. Any measurement may
// be missing.
type DailyWeather struct {
	Date     time.Time
	MaxTemp  *float64
	MinTemp  *float64
	PrecipMM *float64
	Code     *int32 // WMO weather interpretation code
}

// WeatherProvider returns daily weather for start..end inclusive.
type WeatherProvider interface {
	DailyWeather(ctx context.Context, start, end time.Time) ([]DailyWeather, error)
}

// OpenMeteoProvider reads the Open-Meteo historical archive.
type OpenMeteoProvider struct {
	baseURL  string
	location config.Location
	client   *http.Client
}

func NewOpenMeteoProvider(svc config.WeatherService, loc config.Location) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL:  svc.BaseURL,
		location: loc,
		client:   &http.Client{Timeout: svc.Timeout},
	}
}

const dailyVariables = "temperature_2m_max,temperature_2m_min,precipitation_sum,weather_code"

type archiveResponse struct {
	Daily struct {
		Time        []string   `json:"time"`
		MaxTemp     []*float64 `json:"temperature_2m_max"`
		MinTemp     []*float64 `json:"temperature_2m_min"`
		Precip      []*float64 `json:"precipitation_sum"`
		WeatherCode []*int32   `json:"weather_code"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) DailyWeather(ctx context.Context, start, end time.Time) ([]DailyWeather, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base url: %v", ErrExternalService, err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(p.location.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.location.Longitude, 'f', -1, 64))
	q.Set("start_date", start.Format(dateLayout))
	q.Set("end_date", end.Format(dateLayout))
	q.Set("daily", dailyVariables)
	q.Set("timezone", p.location.Timezone)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrExternalService, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrExternalService, resp.StatusCode, body)
	}

	var ar archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrExternalService, err)
	}
	return ar.days()
}

func (ar *archiveResponse) days() ([]DailyWeather, error) {
	d := ar.Daily
	n := len(d.Time)
	if len(d.MaxTemp) != n || len(d.MinTemp) != n || len(d.Precip) != n || len(d.WeatherCode) != n {
		return nil, fmt.Errorf("%w: daily series lengths differ (time=%d max=%d min=%d precip=%d code=%d)",
			ErrExternalService, n, len(d.MaxTemp), len(d.MinTemp), len(d.Precip), len(d.WeatherCode))
	}
	out := make([]DailyWeather, 0, n)
	for i, ts := range d.Time {
		date, err := time.Parse(dateLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: daily time %q: %v", ErrExternalService, ts, err)
		}
		out = append(out, DailyWeather{
			Date:     date,
			MaxTemp:  d.MaxTemp[i],
			MinTemp:  d.MinTemp[i],
			PrecipMM: d.Precip[i],
			Code:     d.WeatherCode[i],
		})
	}
	return out, nil
}

var wmoDescriptions = map[int32]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
}

const unknownWeather = "Unknown"

// DescribeWeather maps a WMO code to its label.
func DescribeWeather(code *int32) string {
	if code == nil {
		return unknownWeather
	}
	if desc, ok := wmoDescriptions[*code]; ok {
		return desc
	}
	return unknownWeather
}

// BuildWeather turns provider days into table rows, sorted by date.
func BuildWeather(days []DailyWeather) []tables.WeatherRow {
	rows := make([]tables.WeatherRow, 0, len(days))
	for _, d := range days {
		row := tables.WeatherRow{
			Date:        civilDate(d.Date).Format(dateLayout),
			MaxTemp:     d.MaxTemp,
			MinTemp:     d.MinTemp,
			PrecipMM:    d.PrecipMM,
			Weather:     d.Code,
			WeatherDesc: DescribeWeather(d.Code),
		}
		if d.MaxTemp != nil && d.MinTemp != nil {
			r := *d.MaxTemp - *d.MinTemp
			row.TempRange = &r
		}
		if d.PrecipMM != nil && *d.PrecipMM > 0 {
			row.IsRainy = 1
		}
		rows = append(rows, row)
	}
	slices.SortStableFunc(rows, func(a, b tables.WeatherRow) int { return cmp.Compare(a.Date, b.Date) })
	return rows
}
