package main

import (
	"noshow/tables"
)

// BuildAppointments projects cleaned records into fact rows, in input
// order. Every neighbourhood must have been assigned an id by
// AggregateNeighbourhoods over the same records.
func BuildAppointments(records []CleanedRecord, nhoodIDs map[string]int32) ([]tables.AppointmentRow, error) {
	rows := make([]tables.AppointmentRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		id, ok := nhoodIDs[rec.Neighbourhood]
		if !ok {
			return nil, &UnresolvedNeighbourhoodError{ApptID: rec.AppointmentID, Neighbourhood: rec.Neighbourhood}
		}
		rows = append(rows, tables.AppointmentRow{
			ApptID:        rec.AppointmentID,
			PatientID:     rec.PatientID,
			NhoodID:       id,
			ScheduledAt:   rec.ScheduledAt.Format(timestampLayout),
			ApptDate:      rec.ApptDate.Format(dateLayout),
			ScheduledTime: rec.ScheduledTime,
			IsNoShow:      rec.IsNoShow,
			SMSReceived:   rec.SMSReceived,
			LeadTimeDays:  int32(rec.LeadTimeDays),
		})
	}
	return rows, nil
}
