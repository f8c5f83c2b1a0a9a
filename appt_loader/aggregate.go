package main

import (
	"cmp"
	"slices"
	"strconv"

	"noshow/tables"
)

type nhoodAcc struct {
	total   int64
	noShows int64
	leadSum int64
}

// AggregateNeighbourhoods groups cleaned records by neighbourhood name.
// Ids are dense from 1 in byte-wise name order; the returned map resolves
// a name to its id for the fact builder.
func AggregateNeighbourhoods(records []CleanedRecord) ([]tables.NeighbourhoodRow, map[string]int32) {
	acc := make(map[string]*nhoodAcc)
	for i := range records {
		rec := &records[i]
		a, ok := acc[rec.Neighbourhood]
		if !ok {
			a = &nhoodAcc{}
			acc[rec.Neighbourhood] = a
		}
		a.total++
		a.leadSum += int64(rec.LeadTimeDays)
		if rec.IsNoShow {
			a.noShows++
		}
	}

	names := sortedKeys(acc)
	rows := make([]tables.NeighbourhoodRow, 0, len(names))
	ids := make(map[string]int32, len(names))
	for i, name := range names {
		a := acc[name]
		id := int32(i + 1)
		ids[name] = id
		rows = append(rows, tables.NeighbourhoodRow{
			NhoodID:     id,
			NhoodName:   name,
			TotalAppts:  a.total,
			NoShowCount: a.noShows,
			NoShowRate:  ratio(a.noShows, a.total),
			AvgLeadTime: ratio(a.leadSum, a.total),
		})
	}
	return rows, ids
}

type patientAcc struct {
	first   *CleanedRecord // first observed row, source of static attributes
	total   int64
	noShows int64
	minDate string
	maxDate string
}

// AggregatePatients groups cleaned records by patient id. Static
// attributes come from the patient's first row in input order. Rows are
// ordered by numeric patient id.
func AggregatePatients(records []CleanedRecord) []tables.PatientRow {
	acc := make(map[string]*patientAcc)
	for i := range records {
		rec := &records[i]
		date := rec.ApptDate.Format(dateLayout)
		a, ok := acc[rec.PatientID]
		if !ok {
			a = &patientAcc{first: rec, minDate: date, maxDate: date}
			acc[rec.PatientID] = a
		}
		a.total++
		if rec.IsNoShow {
			a.noShows++
		}
		// YYYY-MM-DD compares chronologically as a string
		if date < a.minDate {
			a.minDate = date
		}
		if date > a.maxDate {
			a.maxDate = date
		}
	}

	ids := make([]string, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, comparePatientIDs)

	rows := make([]tables.PatientRow, 0, len(ids))
	for _, id := range ids {
		a := acc[id]
		f := a.first
		rows = append(rows, tables.PatientRow{
			PatientID:       id,
			Gender:          f.Gender,
			Age:             f.Age,
			HasHypertension: f.Hypertension,
			HasDiabetes:     f.Diabetes,
			HasAlcoholism:   f.Alcoholism,
			HasHandicap:     f.Handicap,
			Scholarship:     f.Scholarship,
			NoShowCnt:       a.noShows,
			TotalVisits:     a.total,
			NoShowRate:      ratio(a.noShows, a.total),
			LastVisitDate:   a.maxDate,
			FirstVisitDate:  a.minDate,
		})
	}
	return rows
}

// comparePatientIDs orders canonical patient ids numerically, falling
// back to string order for equal values.
func comparePatientIDs(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		if c := cmp.Compare(fa, fb); c != 0 {
			return c
		}
	}
	return cmp.Compare(a, b)
}

// ratio returns 0 for an empty group.
func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
