package main

// Blocklist names the rows dropped before any aggregation. Entries that
// never occur in the data are harmless.
type Blocklist struct {
	ApptIDs        map[int64]struct{}
	Neighbourhoods map[string]struct{}
}

func NewBlocklist(apptIDs []int64, neighbourhoods []string) Blocklist {
	b := Blocklist{
		ApptIDs:        make(map[int64]struct{}, len(apptIDs)),
		Neighbourhoods: make(map[string]struct{}, len(neighbourhoods)),
	}
	for _, id := range apptIDs {
		b.ApptIDs[id] = struct{}{}
	}
	for _, n := range neighbourhoods {
		b.Neighbourhoods[n] = struct{}{}
	}
	return b
}

// CleanStats counts removed rows per reason. A row matching both lists is
// counted once, under ByApptID.
type CleanStats struct {
	Input           int
	ByApptID        int
	ByNeighbourhood int
}

func (s CleanStats) Removed() int { return s.ByApptID + s.ByNeighbourhood }

// Clean returns the records not matched by the blocklist, preserving
// order. The input slice is not modified.
func Clean(records []RawAppointment, bl Blocklist) ([]RawAppointment, CleanStats) {
	stats := CleanStats{Input: len(records)}
	out := make([]RawAppointment, 0, len(records))
	for _, rec := range records {
		if _, ok := bl.ApptIDs[rec.AppointmentID]; ok {
			stats.ByApptID++
			continue
		}
		if _, ok := bl.Neighbourhoods[rec.Neighbourhood]; ok {
			stats.ByNeighbourhood++
			continue
		}
		out = append(out, rec)
	}
	return out, stats
}
