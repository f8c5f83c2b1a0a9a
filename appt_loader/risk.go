package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"noshow/tables"
)

// Additive no-show risk weights used by the dashboard.
const (
	riskBase         = 20
	riskLongLead     = 25 // lead time over longLeadDays
	riskShortLead    = 5
	riskSMS          = -10
	riskNoSMS        = 15
	riskHypertension = 5
	riskDiabetes     = 5
	longLeadDays     = 7
	riskMin, riskMax = 0, 100
)

// RiskScore rates how likely an appointment is to be missed, 0 to 100.
func RiskScore(fact tables.AppointmentRow, patient tables.PatientRow) int {
	score := riskBase
	if fact.LeadTimeDays > longLeadDays {
		score += riskLongLead
	} else {
		score += riskShortLead
	}
	if fact.SMSReceived != 0 {
		score += riskSMS
	} else {
		score += riskNoSMS
	}
	if patient.HasHypertension != 0 {
		score += riskHypertension
	}
	if patient.HasDiabetes != 0 {
		score += riskDiabetes
	}
	return min(max(score, riskMin), riskMax)
}

// ScoredAppointment is a fact row with its risk score and neighbourhood.
type ScoredAppointment struct {
	Appointment   tables.AppointmentRow
	Neighbourhood string
	Score         int
}

// RankAppointments scores every appointment whose patient is known and
// returns them highest score first, ties by appointment id.
func RankAppointments(set *tables.Set) []ScoredAppointment {
	patients := make(map[string]tables.PatientRow, len(set.Patients))
	for _, p := range set.Patients {
		patients[p.PatientID] = p
	}
	nhoods := make(map[int32]string, len(set.Neighbourhoods))
	for _, n := range set.Neighbourhoods {
		nhoods[n.NhoodID] = n.NhoodName
	}

	scored := make([]ScoredAppointment, 0, len(set.Appointments))
	for _, a := range set.Appointments {
		p, ok := patients[a.PatientID]
		if !ok {
			continue
		}
		scored = append(scored, ScoredAppointment{
			Appointment:   a,
			Neighbourhood: nhoods[a.NhoodID],
			Score:         RiskScore(a, p),
		})
	}
	slices.SortStableFunc(scored, func(x, y ScoredAppointment) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		return cmp.Compare(x.Appointment.ApptID, y.Appointment.ApptID)
	})
	return scored
}

// WriteRiskReport prints the top n ranked appointments.
func WriteRiskReport(w io.Writer, ranked []ScoredAppointment, n int) {
	if n > len(ranked) {
		n = len(ranked)
	}
	fmt.Fprintf(w, "Top %d of %d appointments by no-show risk\n", n, len(ranked))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Appt ID", "Patient ID", "Neighbourhood", "Date", "Lead", "SMS", "Score"})
	table.SetAutoWrapText(false)
	for _, s := range ranked[:n] {
		a := s.Appointment
		table.Append([]string{
			strconv.FormatInt(a.ApptID, 10),
			a.PatientID,
			s.Neighbourhood,
			a.ApptDate,
			strconv.Itoa(int(a.LeadTimeDays)),
			strconv.Itoa(int(a.SMSReceived)),
			strconv.Itoa(s.Score),
		})
	}
	table.Render()
}
