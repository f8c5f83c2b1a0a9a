package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"noshow/config"
	"noshow/tables"
)

type exportFile struct {
	name   string
	format string
	rows   int
	write  func(path string) error
}

// exportPlan lists the files to write for the requested formats, CSV
// first when both are enabled.
func exportPlan(formats []string, set *tables.Set) []exportFile {
	var files []exportFile
	for _, f := range formats {
		switch f {
		case config.FormatCSV:
			files = append(files,
				exportFile{tables.NeighbourhoodCSVFile, f, len(set.Neighbourhoods), func(p string) error {
					return tables.WriteCSV(p, tables.NeighbourhoodCodec, set.Neighbourhoods)
				}},
				exportFile{tables.PatientsCSVFile, f, len(set.Patients), func(p string) error {
					return tables.WriteCSV(p, tables.PatientCodec, set.Patients)
				}},
				exportFile{tables.AppointmentCSVFile, f, len(set.Appointments), func(p string) error {
					return tables.WriteCSV(p, tables.AppointmentCodec, set.Appointments)
				}},
			)
		case config.FormatParquet:
			files = append(files,
				exportFile{tables.NeighbourhoodParquetFile, f, len(set.Neighbourhoods), func(p string) error {
					return tables.WriteParquet(p, set.Neighbourhoods)
				}},
				exportFile{tables.PatientsParquetFile, f, len(set.Patients), func(p string) error {
					return tables.WriteParquet(p, set.Patients)
				}},
				exportFile{tables.AppointmentParquetFile, f, len(set.Appointments), func(p string) error {
					return tables.WriteParquet(p, set.Appointments)
				}},
			)
		}
	}
	return files
}

// Export writes the three tables in every requested format, overwriting
// existing files, then records them in m and writes the manifest. Any
// manifest from an earlier run is removed first. A failed file does not
// stop the others; the caller gets a *PartialExportError listing both
// sides and no manifest is written.
func Export(dir string, formats []string, set *tables.Set, m *tables.Manifest) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := tables.RemoveManifestFile(filepath.Join(dir, tables.ManifestFileName)); err != nil {
		return err
	}

	var written []string
	failed := make(map[string]error)
	for _, f := range exportPlan(formats, set) {
		if err := f.write(filepath.Join(dir, f.name)); err != nil {
			failed[f.name] = err
			continue
		}
		written = append(written, f.name)
		m.Files = append(m.Files, tables.ManifestFile{Name: f.name, Format: f.format, Rows: f.rows})
	}
	if len(failed) > 0 {
		return &PartialExportError{Written: written, Failed: failed}
	}

	m.CompletedAt = time.Now().UTC()
	if err := tables.WriteManifest(dir, m); err != nil {
		failed[tables.ManifestFileName] = err
		return &PartialExportError{Written: written, Failed: failed}
	}
	return nil
}
