// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/platform-engineering-labs/fxrefs/internal/effectref"
	"github.com/platform-engineering-labs/fxrefs/internal/util"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatJSONL
}

// Extension returns the file extension used for reports of this format.
func (f Format) Extension() string {
	return "." + string(f)
}

// Sink receives report rows as they are produced.
type Sink interface {
	Write(row effectref.Row) error
}

// Writer is an append-only report table. Every row is flushed before Write
// returns, so an interrupted run leaves a well-formed file behind.
type Writer interface {
	Sink
	Rows() int
	Close() error
}

// Create opens a report file at path and writes the header.
func Create(path string, format Format) (Writer, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	if err := util.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("create report folder: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	var w Writer
	switch format {
	case FormatJSONL:
		w, err = NewJSONLWriter(f)
	default:
		w, err = NewCSVWriter(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

type CSVWriter struct {
	out  io.Writer
	csv  *csv.Writer
	rows int
}

// NewCSVWriter writes the header row immediately. If out is an io.Closer it
// is closed by Close.
func NewCSVWriter(out io.Writer) (*CSVWriter, error) {
	w := &CSVWriter{out: out, csv: csv.NewWriter(out)}
	w.csv.UseCRLF = true

	if err := w.writeRecord(effectref.Header); err != nil {
		return nil, fmt.Errorf("write report header: %w", err)
	}
	return w, nil
}

func (w *CSVWriter) writeRecord(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

func (w *CSVWriter) Write(row effectref.Row) error {
	if err := w.writeRecord(row.Record()); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	w.rows++
	return nil
}

func (w *CSVWriter) Rows() int {
	return w.rows
}

func (w *CSVWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	if c, ok := w.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// JSONLWriter writes one JSON object per row and no header line.
type JSONLWriter struct {
	out  io.Writer
	enc  *json.Encoder
	rows int
}

func NewJSONLWriter(out io.Writer) (*JSONLWriter, error) {
	return &JSONLWriter{out: out, enc: json.NewEncoder(out)}, nil
}

func (w *JSONLWriter) Write(row effectref.Row) error {
	if err := w.enc.Encode(row); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	w.rows++
	return nil
}

func (w *JSONLWriter) Rows() int {
	return w.rows
}

func (w *JSONLWriter) Close() error {
	if c, ok := w.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type multiSink []Sink

// MultiSink duplicates every row to all sinks, stopping at the first error.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Write(row effectref.Row) error {
	for _, s := range m {
		if err := s.Write(row); err != nil {
			return err
		}
	}
	return nil
}
