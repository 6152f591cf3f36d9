package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gocarina/gocsv"
)

// WriteAggregatesCSV writes rows, a slice of structs tagged with `csv`, with
// a BOM so spreadsheets pick up UTF-8 team and player names.
func (w *CSVWriter) WriteAggregatesCSV(filePath string, rows interface{}) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = w.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filePath, err)
	}

	data := make([]byte, 0, len(utf8BOM)+buf.Len())
	data = append(data, utf8BOM...)
	data = append(data, buf.Bytes()...)

	if err := w.files.WriteFile(filePath, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	return nil
}
