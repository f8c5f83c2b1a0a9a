package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"noshow/config"
	"noshow/logging"
	"noshow/tables"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// cli carries the root flags shared by every subcommand.
type cli struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "appt_loader",
		Short:         "Split the no-show appointments dataset into neighbourhood, patient and appointment tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "YAML config file (default ./noshow.yaml if present)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(c.splitCmd(), c.checkCmd(), c.pgCmd(), c.riskCmd(), c.configCmd())
	return root
}

// flagKeys maps command flags to config keys. Only flags the user set
// override the config file and environment.
var flagKeys = map[string]string{
	"log-level": "log.level",
	"input":     "input_path",
	"out":       "output_dir",
	"format":    "formats",
	"malformed": "malformed_policy",
	"scope":     "consistency_scope",
	"pg":        "pg_url",
}

// load resolves the effective configuration for cmd and builds the logger.
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

func (c *cli) splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Load, clean, aggregate and export the three tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			_, err = Run(cfg, logger, cmd.OutOrStdout())
			var pe *PartialExportError
			if errors.As(err, &pe) {
				for _, name := range pe.Written {
					logger.Info("written before failure", zap.String("file", name))
				}
			}
			return err
		},
	}
	cmd.Flags().String("input", "", "Raw appointments CSV")
	cmd.Flags().String("out", "", "Output directory")
	cmd.Flags().StringSlice("format", nil, "Output formats: csv, parquet")
	cmd.Flags().String("malformed", "", "Malformed timestamp policy: drop or abort")
	cmd.Flags().String("scope", "", "Consistency check scope: cleaned or raw")
	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report patients recorded with more than one handicap level",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			records, err := LoadAppointments(cfg.InputPath)
			if err != nil {
				return fmt.Errorf("load appointments: %w", err)
			}
			if cfg.ConsistencyScope == config.ScopeCleaned {
				records, _ = Clean(records, NewBlocklist(cfg.BlocklistedApptIDs, cfg.BlocklistedNeighbourhoods))
			}
			WriteConsistencyReport(cmd.OutOrStdout(), cfg.ConsistencyScope, CheckHandicapConsistency(records))
			return nil
		},
	}
	cmd.Flags().String("input", "", "Raw appointments CSV")
	cmd.Flags().String("scope", "", "Consistency check scope: cleaned or raw")
	return cmd
}

func (c *cli) pgCmd() *cobra.Command {
	var (
		format   string
		truncate bool
	)
	cmd := &cobra.Command{
		Use:   "pg",
		Short: "Load exported tables into PostgreSQL in one transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cfg.PgURL == "" {
				return errors.New("pg_url is required (--pg or NOSHOW_PG_URL)")
			}

			set, err := tables.ReadSet(cfg.OutputDir, format)
			if err != nil {
				return fmt.Errorf("read tables: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input:  %s (%s)\n", cfg.OutputDir, format)
			fmt.Fprintf(cmd.OutOrStdout(), "Rows:   %d appointments\n\n", len(set.Appointments))

			_, err = loadTablesToPg(cmd.Context(), set, cfg.PgURL, truncate)
			return err
		},
	}
	cmd.Flags().String("out", "", "Directory holding the exported tables")
	cmd.Flags().String("pg", "", "PostgreSQL connection string")
	cmd.Flags().StringVar(&format, "from", tables.FormatParquet, "Table format to read: parquet or csv")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "Truncate the tables before loading")
	return cmd
}

func (c *cli) riskCmd() *cobra.Command {
	var (
		format string
		top    int
	)
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Rank exported appointments by no-show risk score",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			set, err := tables.ReadSet(cfg.OutputDir, format)
			if err != nil {
				return fmt.Errorf("read tables: %w", err)
			}
			WriteRiskReport(cmd.OutOrStdout(), RankAppointments(set), top)
			return nil
		},
	}
	cmd.Flags().String("out", "", "Directory holding the exported tables")
	cmd.Flags().StringVar(&format, "from", tables.FormatCSV, "Table format to read: csv or parquet")
	cmd.Flags().IntVar(&top, "top", 20, "Number of appointments to show")
	return cmd
}

func (c *cli) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
