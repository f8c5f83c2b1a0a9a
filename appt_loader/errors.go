package main

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingInputFile: the raw dataset does not exist. Fatal before
	// any table is built.
	ErrMissingInputFile = errors.New("missing input file")

	// ErrMalformedTimestamp: a scheduled or appointment timestamp did not
	// parse. Per row; dropped or fatal depending on malformed_policy.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrUnresolvedNeighbourhood: a cleaned row's neighbourhood has no
	// surrogate id. The aggregator and the fact builder saw different
	// record sets.
	ErrUnresolvedNeighbourhood = errors.New("unresolved neighbourhood")

	// ErrDuplicateAppointmentID: two source rows share an appointment id,
	// the fact table's primary key. Fatal at load.
	ErrDuplicateAppointmentID = errors.New("duplicate appointment id")

	// ErrPartialExport: at least one output file failed to write. Files
	// already written are left in place.
	ErrPartialExport = errors.New("partial export failure")
)

// MalformedTimestampError identifies the offending CSV cell.
type MalformedTimestampError struct {
	Line   int64
	Column string
	Value  string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("line %d: %s %q: %s", e.Line, e.Column, e.Value, ErrMalformedTimestamp)
}

func (e *MalformedTimestampError) Unwrap() error { return ErrMalformedTimestamp }

type UnresolvedNeighbourhoodError struct {
	ApptID        int64
	Neighbourhood string
}

func (e *UnresolvedNeighbourhoodError) Error() string {
	return fmt.Sprintf("appointment %d: %s %q", e.ApptID, ErrUnresolvedNeighbourhood, e.Neighbourhood)
}

func (e *UnresolvedNeighbourhoodError) Unwrap() error { return ErrUnresolvedNeighbourhood }

// DuplicateAppointmentError names both source lines carrying ApptID.
type DuplicateAppointmentError struct {
	ApptID    int64
	FirstLine int64
	Line      int64
}

func (e *DuplicateAppointmentError) Error() string {
	return fmt.Sprintf("line %d: %s %d (first on line %d)", e.Line, ErrDuplicateAppointmentID, e.ApptID, e.FirstLine)
}

func (e *DuplicateAppointmentError) Unwrap() error { return ErrDuplicateAppointmentID }

// PartialExportError lists which files made it to disk and which did not.
type PartialExportError struct {
	Written []string
	Failed  map[string]error
}

func (e *PartialExportError) Error() string {
	var b strings.Builder
	b.WriteString(ErrPartialExport.Error())
	fmt.Fprintf(&b, ": %d written, %d failed", len(e.Written), len(e.Failed))
	for _, name := range sortedKeys(e.Failed) {
		fmt.Fprintf(&b, "; %s: %v", name, e.Failed[name])
	}
	return b.String()
}

func (e *PartialExportError) Unwrap() error { return ErrPartialExport }
