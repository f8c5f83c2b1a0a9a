package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"noshow/config"
	"noshow/tables"
)

const toolName = "appt_loader"

// RunResult is everything one split run produced.
type RunResult struct {
	RunID        string
	Loaded       int
	Clean        CleanStats
	Derive       DeriveStats
	Inconsistent []HandicapInconsistency
	Tables       *tables.Set
	Manifest     *tables.Manifest
}

// buildTables runs every in-memory stage. Nothing is written until it
// returns successfully.
func buildTables(cfg *config.Config, logger *zap.Logger, res *RunResult) error {
	raw, err := LoadAppointments(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}
	res.Loaded = len(raw)
	logger.Info("loaded appointments", zap.String("path", cfg.InputPath), zap.Int("rows", len(raw)))

	cleaned, cleanStats := Clean(raw, NewBlocklist(cfg.BlocklistedApptIDs, cfg.BlocklistedNeighbourhoods))
	res.Clean = cleanStats
	logger.Info("applied blocklists",
		zap.Int("rows", len(cleaned)),
		zap.Int("by_appt_id", cleanStats.ByApptID),
		zap.Int("by_neighbourhood", cleanStats.ByNeighbourhood),
	)

	scope := cleaned
	if cfg.ConsistencyScope == config.ScopeRaw {
		scope = raw
	}
	res.Inconsistent = CheckHandicapConsistency(scope)
	if len(res.Inconsistent) > 0 {
		logger.Warn("inconsistent handicap levels",
			zap.Int("patients", len(res.Inconsistent)),
			zap.String("scope", cfg.ConsistencyScope),
		)
	}

	records, deriveStats, err := Derive(cleaned, cfg.MalformedPolicy, logger)
	if err != nil {
		return fmt.Errorf("derive fields: %w", err)
	}
	res.Derive = deriveStats

	nhoods, nhoodIDs := AggregateNeighbourhoods(records)
	patients := AggregatePatients(records)
	appts, err := BuildAppointments(records, nhoodIDs)
	if err != nil {
		return fmt.Errorf("build appointments: %w", err)
	}
	res.Tables = &tables.Set{Neighbourhoods: nhoods, Patients: patients, Appointments: appts}
	return nil
}

// Run executes the full split: load, clean, derive, aggregate, check and
// export. The consistency report and run summary go to out.
func Run(cfg *config.Config, logger *zap.Logger, out io.Writer) (*RunResult, error) {
	start := time.Now()
	res := &RunResult{RunID: uuid.NewString()}
	logger = logger.With(zap.String("run_id", res.RunID))

	if err := buildTables(cfg, logger, res); err != nil {
		return res, err
	}

	WriteConsistencyReport(out, cfg.ConsistencyScope, res.Inconsistent)
	fmt.Fprintln(out)

	res.Manifest = &tables.Manifest{
		RunID:     res.RunID,
		Tool:      toolName,
		Source:    cfg.InputPath,
		StartedAt: start.UTC(),
	}
	if err := Export(cfg.OutputDir, cfg.Formats, res.Tables, res.Manifest); err != nil {
		logger.Error("export failed", zap.String("path", cfg.OutputDir), zap.Error(err))
		return res, err
	}
	logger.Info("exported tables", zap.String("path", cfg.OutputDir), zap.Int("files", len(res.Manifest.Files)))

	printSummary(out, res, time.Since(start))
	return res, nil
}

func printSummary(out io.Writer, res *RunResult, elapsed time.Duration) {
	fmt.Fprintf(out, "Done in %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "  Run ID:            %s\n", res.RunID)
	fmt.Fprintf(out, "  Rows loaded:       %d\n", res.Loaded)
	fmt.Fprintf(out, "  Blocklisted:       %d (%d by id, %d by neighbourhood)\n",
		res.Clean.Removed(), res.Clean.ByApptID, res.Clean.ByNeighbourhood)
	fmt.Fprintf(out, "  Malformed dropped: %d\n", res.Derive.Malformed)
	fmt.Fprintf(out, "  Neighbourhoods:    %d\n", len(res.Tables.Neighbourhoods))
	fmt.Fprintf(out, "  Patients:          %d\n", len(res.Tables.Patients))
	fmt.Fprintf(out, "  Appointments:      %d\n", len(res.Tables.Appointments))
	fmt.Fprintf(out, "  Inconsistent:      %d patients\n", len(res.Inconsistent))
	for _, f := range res.Manifest.Files {
		fmt.Fprintf(out, "  Wrote %-22s %d rows\n", f.Name, f.Rows)
	}
}
