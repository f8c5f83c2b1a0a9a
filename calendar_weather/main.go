package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noshow/config"
	"noshow/logging"
	"noshow/tables"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(nil).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cli struct {
	configFile string
	// newProvider builds the weather source; tests swap in a stub.
	newProvider func(*config.Config) WeatherProvider
}

var flagKeys = map[string]string{
	"log-level": "log.level",
	"out":       "output_dir",
	"format":    "formats",
	"region":    "holiday_region",
	"pg":        "pg_url",
}

func newRootCmd(newProvider func(*config.Config) WeatherProvider) *cobra.Command {
	if newProvider == nil {
		newProvider = func(cfg *config.Config) WeatherProvider {
			return NewOpenMeteoProvider(cfg.Weather, cfg.WeatherLocation)
		}
	}
	c := &cli{newProvider: newProvider}
	root := &cobra.Command{
		Use:           "calendar_weather",
		Short:         "Build the calendar and weather tables for the exported appointment span",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "YAML config file (default ./noshow.yaml if present)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(c.enrichCmd(), c.pgCmd(), c.holidaysCmd())
	return root
}

func (c *cli) load(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	v, err := config.NewViper(c.configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func (c *cli) enrichCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Write Calendar and Weather tables, optionally loading them into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			res, err := Enrich(cmd.Context(), cfg, from, c.newProvider(cfg), logger, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if cfg.PgURL == "" {
				return nil
			}
			_, err = loadEnrichmentToPg(cmd.Context(), res.Calendar, res.Weather, cfg.PgURL)
			return err
		},
	}
	cmd.Flags().String("out", "", "Directory holding the exported appointment table")
	cmd.Flags().StringVar(&from, "from", tables.FormatCSV, "Appointment table format to read: csv or parquet")
	cmd.Flags().StringSlice("format", nil, "Output formats: csv, parquet")
	cmd.Flags().String("region", "", "Holiday calendar: BR or BR-ES")
	cmd.Flags().String("pg", "", "PostgreSQL connection string")
	return cmd
}

func (c *cli) pgCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "pg",
		Short: "Load previously written Calendar and Weather tables into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cfg.PgURL == "" {
				return errors.New("pg_url is required (--pg or NOSHOW_PG_URL)")
			}

			var (
				calendar []tables.CalendarRow
				weather  []tables.WeatherRow
			)
			switch from {
			case tables.FormatCSV:
				if calendar, err = tables.ReadCSV(filepath.Join(cfg.OutputDir, tables.CalendarCSVFile), tables.CalendarCodec); err != nil {
					return err
				}
				if weather, err = tables.ReadCSV(filepath.Join(cfg.OutputDir, tables.WeatherCSVFile), tables.WeatherCodec); err != nil {
					return err
				}
			case tables.FormatParquet:
				if calendar, err = tables.ReadParquet[tables.CalendarRow](filepath.Join(cfg.OutputDir, tables.CalendarParquetFile)); err != nil {
					return err
				}
				if weather, err = tables.ReadParquet[tables.WeatherRow](filepath.Join(cfg.OutputDir, tables.WeatherParquetFile)); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown table format %q", from)
			}
			_, err = loadEnrichmentToPg(cmd.Context(), calendar, weather, cfg.PgURL)
			return err
		},
	}
	cmd.Flags().String("out", "", "Directory holding the Calendar and Weather tables")
	cmd.Flags().String("pg", "", "PostgreSQL connection string")
	cmd.Flags().StringVar(&from, "from", tables.FormatCSV, "Table format to read: csv or parquet")
	return cmd
}

func (c *cli) holidaysCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the public holidays of one year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cal, err := NewHolidayCalendar(cfg.HolidayRegion)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Holidays %d (%s)\n", year, cfg.HolidayRegion)
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Date", "Dow", "Name"})
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for _, h := range cal.List(year) {
				table.Append([]string{h.Date.Format(dateLayout), strconv.Itoa(int(mondayFirst(h.Date.Weekday()))), h.Name})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Calendar year")
	cmd.Flags().String("region", "", "Holiday calendar: BR or BR-ES")
	return cmd
}
