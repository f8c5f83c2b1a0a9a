package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"noshow/config"
	"noshow/tables"
)

const toolName = "calendar_weather"

type EnrichResult struct {
	RunID    string
	Start    time.Time
	End      time.Time
	Calendar []tables.CalendarRow
	Weather  []tables.WeatherRow
	Manifest *tables.Manifest
}

// Enrich derives the calendar and weather tables for the appointment date
// span found in cfg.OutputDir and writes them next to it. The calendar is
// written before weather is fetched, so a failing archive still leaves a
// usable calendar behind.
func Enrich(ctx context.Context, cfg *config.Config, from string, provider WeatherProvider, logger *zap.Logger, out io.Writer) (*EnrichResult, error) {
	begin := time.Now()
	res := &EnrichResult{RunID: uuid.NewString()}
	logger = logger.With(zap.String("run_id", res.RunID))

	holidays, err := NewHolidayCalendar(cfg.HolidayRegion)
	if err != nil {
		return res, err
	}

	res.Start, res.End, err = ReadApptDateSpan(cfg.OutputDir, from)
	if err != nil {
		return res, fmt.Errorf("read appointment span: %w", err)
	}
	fmt.Fprintf(out, "Date range: %s ~ %s\n", res.Start.Format(dateLayout), res.End.Format(dateLayout))

	manifestPath := filepath.Join(cfg.OutputDir, tables.EnrichmentManifestFile)
	if err := tables.RemoveManifestFile(manifestPath); err != nil {
		return res, err
	}

	res.Calendar = BuildCalendar(res.Start, res.End, holidays)
	res.Manifest = &tables.Manifest{
		RunID:     res.RunID,
		Tool:      toolName,
		Source:    cfg.OutputDir,
		StartedAt: begin.UTC(),
	}
	if err := writeTable(cfg, res.Manifest, tables.CalendarCSVFile, tables.CalendarParquetFile, tables.CalendarCodec, res.Calendar); err != nil {
		return res, err
	}
	logger.Info("wrote calendar", zap.Int("rows", len(res.Calendar)), zap.String("region", cfg.HolidayRegion))

	days, err := provider.DailyWeather(ctx, res.Start, res.End)
	if err != nil {
		logger.Error("weather fetch failed", zap.Error(err))
		return res, fmt.Errorf("fetch weather: %w", err)
	}
	res.Weather = BuildWeather(days)
	if err := writeTable(cfg, res.Manifest, tables.WeatherCSVFile, tables.WeatherParquetFile, tables.WeatherCodec, res.Weather); err != nil {
		return res, err
	}
	logger.Info("wrote weather", zap.Int("rows", len(res.Weather)))

	res.Manifest.CompletedAt = time.Now().UTC()
	if err := tables.WriteManifestFile(manifestPath, res.Manifest); err != nil {
		return res, err
	}

	printSummary(out, res, time.Since(begin))
	return res, nil
}

func writeTable[T any](cfg *config.Config, m *tables.Manifest, csvName, parquetName string, codec tables.Codec[T], rows []T) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if cfg.HasFormat(config.FormatCSV) {
		if err := tables.WriteCSV(filepath.Join(cfg.OutputDir, csvName), codec, rows); err != nil {
			return err
		}
		m.Files = append(m.Files, tables.ManifestFile{Name: csvName, Format: config.FormatCSV, Rows: len(rows)})
	}
	if cfg.HasFormat(config.FormatParquet) {
		if err := tables.WriteParquet(filepath.Join(cfg.OutputDir, parquetName), rows); err != nil {
			return err
		}
		m.Files = append(m.Files, tables.ManifestFile{Name: parquetName, Format: config.FormatParquet, Rows: len(rows)})
	}
	return nil
}

func printSummary(out io.Writer, res *EnrichResult, elapsed time.Duration) {
	var holidays, rainy int
	for _, c := range res.Calendar {
		holidays += int(c.IsHoliday)
	}
	var missingMax int
	for _, w := range res.Weather {
		rainy += int(w.IsRainy)
		if w.MaxTemp == nil {
			missingMax++
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Done in %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "  Run ID:         %s\n", res.RunID)
	fmt.Fprintf(out, "  Calendar rows:  %d (%d holidays)\n", len(res.Calendar), holidays)
	fmt.Fprintf(out, "  Weather rows:   %d (%d rainy, %d missing max_temp)\n", len(res.Weather), rainy, missingMax)
	for _, f := range res.Manifest.Files {
		fmt.Fprintf(out, "  Wrote %-22s %d rows\n", f.Name, f.Rows)
	}
}
