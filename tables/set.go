package tables

import (
	"fmt"
	"path/filepath"
)

const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// ReadSet reloads the three core tables from dir in the given format.
// CSV files do not carry NoShowCount or TotalVisits; they are recomputed
// from the appointment facts.
func ReadSet(dir, format string) (*Set, error) {
	var (
		s   Set
		err error
	)
	switch format {
	case FormatCSV:
		if s.Neighbourhoods, err = ReadCSV(filepath.Join(dir, NeighbourhoodCSVFile), NeighbourhoodCodec); err != nil {
			return nil, err
		}
		if s.Patients, err = ReadCSV(filepath.Join(dir, PatientsCSVFile), PatientCodec); err != nil {
			return nil, err
		}
		if s.Appointments, err = ReadCSV(filepath.Join(dir, AppointmentCSVFile), AppointmentCodec); err != nil {
			return nil, err
		}
		s.FillCounts()
	case FormatParquet:
		if s.Neighbourhoods, err = ReadParquet[NeighbourhoodRow](filepath.Join(dir, NeighbourhoodParquetFile)); err != nil {
			return nil, err
		}
		if s.Patients, err = ReadParquet[PatientRow](filepath.Join(dir, PatientsParquetFile)); err != nil {
			return nil, err
		}
		if s.Appointments, err = ReadParquet[AppointmentRow](filepath.Join(dir, AppointmentParquetFile)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown table format %q", format)
	}
	return &s, nil
}

// FillCounts sets NoShowCount on neighbourhoods and TotalVisits on
// patients from the appointment facts.
func (s *Set) FillCounts() {
	noShows := make(map[int32]int64, len(s.Neighbourhoods))
	visits := make(map[string]int64, len(s.Patients))
	for _, a := range s.Appointments {
		visits[a.PatientID]++
		if a.IsNoShow {
			noShows[a.NhoodID]++
		}
	}
	for i := range s.Neighbourhoods {
		s.Neighbourhoods[i].NoShowCount = noShows[s.Neighbourhoods[i].NhoodID]
	}
	for i := range s.Patients {
		s.Patients[i].TotalVisits = visits[s.Patients[i].PatientID]
	}
}
