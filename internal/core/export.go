package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// ExportFilename is the name offered for the cleaned download.
const ExportFilename = "cleaned_data.csv"

// ExportContentType is the MIME type of the cleaned download.
const ExportContentType = "text/csv"

// WriteCSV writes d as comma-separated UTF-8 text: a header row of column
// names followed by one line per row. The row index is not written.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(d.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	formatted := make([][]string, len(d.Columns))
	for i, c := range d.Columns {
		formatted[i] = FormatColumn(c)
	}

	record := make([]string, len(d.Columns))
	for r := 0; r < d.NumRows(); r++ {
		for c := range d.Columns {
			record[c] = formatted[c][r]
		}
		// A lone empty field would otherwise become a blank line that
		// readers skip.
		if len(record) == 1 && record[0] == "" {
			cw.Flush()
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
			continue
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV returns the CSV serialization of d.
func ExportCSV(d *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
