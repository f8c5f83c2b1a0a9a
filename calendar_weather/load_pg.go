package main

import (
	"context"
	"fmt"
	"time"

	"noshow/db"
	"noshow/tables"
)

type pgLoadStats struct {
	CalendarDays int64
	WeatherDays  int64
}

// loadEnrichmentToPg replaces calendar_days and weather_days in one
// transaction.
func loadEnrichmentToPg(ctx context.Context, calendar []tables.CalendarRow, weather []tables.WeatherRow, connStr string) (pgLoadStats, error) {
	var stats pgLoadStats
	start := time.Now()

	calParams := make([]db.CopyCalendarDaysParams, 0, len(calendar))
	for _, c := range calendar {
		date, err := db.DateFromString(c.Date)
		if err != nil {
			return stats, fmt.Errorf("calendar: %w", err)
		}
		calParams = append(calParams, db.CopyCalendarDaysParams{
			Date:            date,
			Dow:             int16(c.Dow),
			Month:           int16(c.Month),
			IsWeekend:       int16(c.IsWeekend),
			IsHoliday:       int16(c.IsHoliday),
			IsBeforeHoliday: int16(c.IsBeforeHoliday),
			IsAfterHoliday:  int16(c.IsAfterHoliday),
		})
	}
	weatherParams := make([]db.CopyWeatherDaysParams, 0, len(weather))
	for _, w := range weather {
		date, err := db.DateFromString(w.Date)
		if err != nil {
			return stats, fmt.Errorf("weather: %w", err)
		}
		weatherParams = append(weatherParams, db.CopyWeatherDaysParams{
			Date:        date,
			MaxTemp:     db.OptFloat8(w.MaxTemp),
			MinTemp:     db.OptFloat8(w.MinTemp),
			PrecipMm:    db.OptFloat8(w.PrecipMM),
			Weather:     db.OptInt4(w.Weather),
			WeatherDesc: w.WeatherDesc,
			TempRange:   db.OptFloat8(w.TempRange),
			IsRainy:     int16(w.IsRainy),
		})
	}

	pool, err := db.Connect(ctx, connStr)
	if err != nil {
		return stats, err
	}
	defer pool.Close()
	fmt.Println("Connected to PostgreSQL")

	if err := db.InitSchema(ctx, pool); err != nil {
		return stats, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)
	q := db.New(tx)

	if err := q.TruncateEnrichmentTables(ctx); err != nil {
		return stats, fmt.Errorf("truncate: %w", err)
	}
	if stats.CalendarDays, err = q.CopyCalendarDays(ctx, calParams); err != nil {
		return stats, fmt.Errorf("copy calendar_days: %w", err)
	}
	if stats.WeatherDays, err = q.CopyWeatherDays(ctx, weatherParams); err != nil {
		return stats, fmt.Errorf("copy weather_days: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Println()
	fmt.Printf("Done in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  Calendar days: %d\n", stats.CalendarDays)
	fmt.Printf("  Weather days:  %d\n", stats.WeatherDays)
	return stats, nil
}
