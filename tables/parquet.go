package tables

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ParquetWriter writes rows of one table to a Parquet file.
//
// The tables are small (tens of thousands of rows), so everything lands
// in a single row group; Zstd still shrinks the repeated dates and
// neighbourhood ids to a fraction of the CSV size.
type ParquetWriter[T any] struct {
	file   *os.File
	writer *parquet.GenericWriter[T]
	count  int
}

// NewParquetWriter creates (or truncates) path.
func NewParquetWriter[T any](path string) (*ParquetWriter[T], error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[T](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.PageBufferSize(8*1024),
		parquet.DataPageStatistics(true),
		parquet.CreatedBy("noshow", "1.0", ""),
	)

	return &ParquetWriter[T]{
		file:   file,
		writer: writer,
	}, nil
}

// Write appends a batch of rows.
func (w *ParquetWriter[T]) Write(rows []T) (int, error) {
	n, err := w.writer.Write(rows)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Close flushes the row group and closes the file.
func (w *ParquetWriter[T]) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the total number of rows written.
func (w *ParquetWriter[T]) Count() int {
	return w.count
}

// WriteParquet writes all rows to path in one call.
func WriteParquet[T any](path string, rows []T) error {
	w, err := NewParquetWriter[T](path)
	if err != nil {
		return err
	}
	if _, err := w.Write(rows); err != nil {
		w.Close()
		return err
	}
	if w.Count() != len(rows) {
		w.Close()
		return fmt.Errorf("short parquet write %s: %d of %d rows", path, w.Count(), len(rows))
	}
	return w.Close()
}

// ReadParquet loads every row of a Parquet file written for T.
func ReadParquet[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}
