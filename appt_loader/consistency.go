package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// reportLimit is how many inconsistent patients the report prints in full.
const reportLimit = 3

// HandicapRow is one appointment of an inconsistent patient.
type HandicapRow struct {
	PatientID     string
	AppointmentID int64
	Handicap      int32
}

// HandicapInconsistency is a patient recorded with more than one
// disability level.
type HandicapInconsistency struct {
	PatientID string
	Levels    []int32 // distinct, ascending
	Rows      []HandicapRow
}

// CheckHandicapConsistency returns every patient whose records carry more
// than one distinct handicap level, ordered by numeric patient id. Rows
// keep input order.
func CheckHandicapConsistency(records []RawAppointment) []HandicapInconsistency {
	byPatient := make(map[string][]HandicapRow)
	var order []string
	for _, rec := range records {
		if _, ok := byPatient[rec.PatientID]; !ok {
			order = append(order, rec.PatientID)
		}
		byPatient[rec.PatientID] = append(byPatient[rec.PatientID], HandicapRow{
			PatientID:     rec.PatientID,
			AppointmentID: rec.AppointmentID,
			Handicap:      rec.Handicap,
		})
	}

	var out []HandicapInconsistency
	for _, id := range order {
		rows := byPatient[id]
		var levels []int32
		for _, r := range rows {
			if !slices.Contains(levels, r.Handicap) {
				levels = append(levels, r.Handicap)
			}
		}
		if len(levels) < 2 {
			continue
		}
		slices.Sort(levels)
		out = append(out, HandicapInconsistency{PatientID: id, Levels: levels, Rows: rows})
	}
	slices.SortFunc(out, func(a, b HandicapInconsistency) int {
		return comparePatientIDs(a.PatientID, b.PatientID)
	})
	return out
}

// WriteConsistencyReport renders the checker result for humans. It only
// informs; an inconsistent dataset is still exported.
func WriteConsistencyReport(w io.Writer, scope string, found []HandicapInconsistency) {
	if len(found) == 0 {
		fmt.Fprintf(w, "%s no patients with inconsistent handicap levels (%s records)\n",
			color.GreenString("OK"), scope)
		return
	}

	fmt.Fprintf(w, "%s %d patients with inconsistent handicap levels (%s records)\n",
		color.YellowString("WARN"), len(found), scope)

	for _, inc := range found[:min(len(found), reportLimit)] {
		fmt.Fprintln(w)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Patient ID", "Appointment ID", "Handicap"})
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, r := range inc.Rows {
			table.Append([]string{r.PatientID, strconv.FormatInt(r.AppointmentID, 10), strconv.Itoa(int(r.Handicap))})
		}
		table.Render()
	}
	if len(found) > reportLimit {
		fmt.Fprintf(w, "\n... and %d more\n", len(found)-reportLimit)
	}
}
