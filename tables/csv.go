package tables

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Codec maps a row type to and from one CSV record. Header is the column
// order written on export; on read, columns are located by name so a file
// with reordered or extra columns still loads.
type Codec[T any] struct {
	Header []string
	Encode func(T) []string
	Decode func(*Fields) T
}

// WriteCSV writes rows to path, replacing any existing file.
func WriteCSV[T any](path string, codec Codec[T], rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	bw := bufio.NewWriterSize(f, 256*1024)
	w := csv.NewWriter(bw)
	if err := w.Write(codec.Header); err != nil {
		f.Close()
		return fmt.Errorf("write header %s: %w", path, err)
	}
	for i := range rows {
		if err := w.Write(codec.Encode(rows[i])); err != nil {
			f.Close()
			return fmt.Errorf("write %s row %d: %w", path, i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV loads every row of a file written by WriteCSV (or any file
// carrying the codec's columns).
func ReadCSV[T any](path string, codec Codec[T]) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, 256*1024))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	order := make([]int, len(codec.Header))
	for i, name := range codec.Header {
		idx, ok := colIdx[name]
		if !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, name)
		}
		order[i] = idx
	}

	var rows []T
	line := int64(1)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", path, line, err)
		}
		if len(rec) == 1 && rec[0] == "" {
			continue
		}

		fields := &Fields{names: codec.Header, values: make([]string, len(order))}
		for i, idx := range order {
			if idx < len(rec) {
				fields.values[i] = strings.TrimSpace(rec[idx])
			}
		}
		row := codec.Decode(fields)
		if fields.err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, fields.err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Fields is a positional view over one CSV record in codec header order.
// The first conversion failure is kept and reported by ReadCSV; later
// accessors return zero values.
type Fields struct {
	names  []string
	values []string
	err    error
}

func (f *Fields) fail(i int, err error) {
	if f.err == nil {
		f.err = fmt.Errorf("column %s: %w", f.names[i], err)
	}
}

func (f *Fields) String(i int) string { return f.values[i] }

func (f *Fields) Int64(i int) int64 {
	n, err := strconv.ParseInt(f.values[i], 10, 64)
	if err != nil {
		f.fail(i, err)
	}
	return n
}

func (f *Fields) Int32(i int) int32 {
	n, err := strconv.ParseInt(f.values[i], 10, 32)
	if err != nil {
		f.fail(i, err)
	}
	return int32(n)
}

func (f *Fields) Float64(i int) float64 {
	v, err := strconv.ParseFloat(f.values[i], 64)
	if err != nil {
		f.fail(i, err)
	}
	return v
}

// Bool accepts 1/0 and true/false.
func (f *Fields) Bool(i int) bool {
	switch strings.ToLower(f.values[i]) {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	f.fail(i, errors.New("invalid boolean "+strconv.Quote(f.values[i])))
	return false
}

// OptFloat64 returns nil for an empty cell.
func (f *Fields) OptFloat64(i int) *float64 {
	if f.values[i] == "" {
		return nil
	}
	v := f.Float64(i)
	return &v
}

func (f *Fields) OptInt32(i int) *int32 {
	if f.values[i] == "" {
		return nil
	}
	v := f.Int32(i)
	return &v
}

// Value formatting shared by the encoders. Floats use the shortest
// representation that parses back to the same bits.

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func fmtInt[N int32 | int64](v N) string { return strconv.FormatInt(int64(v), 10) }

func fmtBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func fmtOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

func fmtOptInt(v *int32) string {
	if v == nil {
		return ""
	}
	return fmtInt(*v)
}
