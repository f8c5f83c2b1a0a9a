package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// Canonical column keys of the source dataset. Values are matched against
// the lowercased, trimmed header; the misspellings are the dataset's own.
const (
	colPatientID      = "patientid"
	colAppointmentID  = "appointmentid"
	colGender         = "gender"
	colScheduledDay   = "scheduledday"
	colAppointmentDay = "appointmentday"
	colAge            = "age"
	colNeighbourhood  = "neighbourhood"
	colScholarship    = "scholarship"
	colHypertension   = "hipertension"
	colDiabetes       = "diabetes"
	colAlcoholism     = "alcoholism"
	colHandicap       = "handcap"
	colSMSReceived    = "sms_received"
	colNoShow         = "no-show"
)

// requiredColumns lists every column the loader needs, in source order.
var requiredColumns = []string{
	colPatientID, colAppointmentID, colGender, colScheduledDay, colAppointmentDay,
	colAge, colNeighbourhood, colScholarship, colHypertension, colDiabetes,
	colAlcoholism, colHandicap, colSMSReceived, colNoShow,
}

// headerAliases maps alternative spellings seen in re-exports of the
// dataset to the canonical key.
var headerAliases = map[string]string{
	"hypertension":   colHypertension,
	"handicap":       colHandicap,
	"noshow":         colNoShow,
	"no_show":        colNoShow,
	"smsreceived":    colSMSReceived,
	"neighborhood":   colNeighbourhood,
	"appointment_id": colAppointmentID,
	"patient_id":     colPatientID,
}

// ApptReader streams the raw appointments CSV one record at a time.
type ApptReader struct {
	file   *os.File
	csv    *csv.Reader
	rowNum int64
	colIdx map[string]int // canonical key → column index
}

func NewApptReader(path string) (*ApptReader, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInputFile, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	r := &ApptReader{
		file:   file,
		csv:    reader,
		colIdx: make(map[string]int),
	}
	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func (r *ApptReader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	r.rowNum++

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if alias, ok := headerAliases[key]; ok {
			key = alias
		}
		if _, dup := r.colIdx[key]; !dup {
			r.colIdx[key] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := r.colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("header: missing required columns %s", strings.Join(missing, ", "))
	}
	return nil
}

// Next returns the next record, or io.EOF after the last one.
func (r *ApptReader) Next() (RawAppointment, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			if err == io.EOF {
				return RawAppointment{}, io.EOF
			}
			r.rowNum++
			return RawAppointment{}, fmt.Errorf("line %d: %w", r.rowNum, err)
		}
		r.rowNum++
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		return r.parseRow(row)
	}
}

func (r *ApptReader) Close() error { return r.file.Close() }

// rowParser carries the first conversion error of one row.
type rowParser struct {
	r   *ApptReader
	row []string
	err error
}

func (p *rowParser) str(col string) string {
	idx := p.r.colIdx[col]
	if idx < len(p.row) {
		return strings.TrimSpace(p.row[idx])
	}
	return ""
}

func (p *rowParser) fail(col string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("line %d: column %s: %w", p.r.rowNum, col, err)
	}
}

func (p *rowParser) int64(col string) int64 {
	n, err := strconv.ParseInt(p.str(col), 10, 64)
	if err != nil {
		p.fail(col, err)
	}
	return n
}

func (p *rowParser) int32(col string) int32 {
	n, err := strconv.ParseInt(p.str(col), 10, 32)
	if err != nil {
		p.fail(col, err)
	}
	return int32(n)
}

func (r *ApptReader) parseRow(row []string) (RawAppointment, error) {
	p := &rowParser{r: r, row: row}

	patientID, err := normalizePatientID(p.str(colPatientID))
	if err != nil {
		p.fail(colPatientID, err)
	}

	rec := RawAppointment{
		Line:           r.rowNum,
		PatientID:      patientID,
		AppointmentID:  p.int64(colAppointmentID),
		Gender:         p.str(colGender),
		ScheduledDay:   p.str(colScheduledDay),
		AppointmentDay: p.str(colAppointmentDay),
		Age:            p.int32(colAge),
		Neighbourhood:  p.str(colNeighbourhood),
		Scholarship:    p.int32(colScholarship),
		Hypertension:   p.int32(colHypertension),
		Diabetes:       p.int32(colDiabetes),
		Alcoholism:     p.int32(colAlcoholism),
		Handicap:       p.int32(colHandicap),
		SMSReceived:    p.int32(colSMSReceived),
		NoShowLabel:    p.str(colNoShow),
	}

	if _, err := parseNoShowLabel(rec.NoShowLabel); err != nil {
		p.fail(colNoShow, err)
	}
	if p.err != nil {
		return RawAppointment{}, p.err
	}
	return rec, nil
}

// parseNoShowLabel reports whether the label marks a missed appointment.
func parseNoShowLabel(label string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid no-show label %q", label)
}

// normalizePatientID turns the float-formatted ids of the source
// ("29872499824296.0", "2.987250e+13") into a canonical decimal string.
// Genuinely fractional ids keep their fraction.
func normalizePatientID(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty patient id")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("non-finite patient id %q", s)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// LoadAppointments reads the whole dataset into memory in file order.
// Appointment ids must be unique across the file.
func LoadAppointments(path string) ([]RawAppointment, error) {
	r, err := NewApptReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var records []RawAppointment
	seen := make(map[int64]int64)
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		if first, dup := seen[rec.AppointmentID]; dup {
			return nil, fmt.Errorf("read CSV: %w", &DuplicateAppointmentError{ApptID: rec.AppointmentID, FirstLine: first, Line: rec.Line})
		}
		seen[rec.AppointmentID] = rec.Line
		records = append(records, rec)
	}
	return records, nil
}
