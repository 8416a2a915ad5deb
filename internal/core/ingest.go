package core

// ingest.go parses an uploaded file into a Dataset.
//
// The reader is chosen from the file extension alone, matched
// case-sensitively: ".csv" goes to the CSV reader, ".xlsx" to the workbook
// reader. Parse failures are terminal for the pipeline run; no partial
// Dataset is ever returned.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Ingest errors. Wrapped errors keep these as their cause so callers can
// use errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrEmptyFile         = errors.New("empty file")
	ErrEncoding          = errors.New("encoding error")
	ErrInvalidCSV        = errors.New("invalid csv")
	ErrInvalidWorkbook   = errors.New("invalid xlsx")
)

// Supported upload formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// AcceptedExtensions lists the extensions the upload control offers.
var AcceptedExtensions = []string{".csv", ".xlsx"}

// Upload is a raw uploaded file as received from the browser.
type Upload struct {
	Filename   string
	Data       []byte
	UploadedAt time.Time
}

// Size returns the upload size in bytes.
func (u Upload) Size() int {
	return len(u.Data)
}

// DetectFormat returns the reader format for a filename, or "" when the
// extension is not supported.
func DetectFormat(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".csv"):
		return FormatCSV
	case strings.HasSuffix(filename, ".xlsx"):
		return FormatXLSX
	default:
		return ""
	}
}

// Ingest parses the upload with the reader matching its extension.
func Ingest(u Upload) (*Dataset, error) {
	switch DetectFormat(u.Filename) {
	case FormatCSV:
		return ReadCSV(u.Data)
	case FormatXLSX:
		return ReadXLSX(u.Data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, u.Filename)
	}
}

// ReadCSV parses comma-separated data with a header row.
//
// A UTF-8 or UTF-16 byte order mark is honoured. Blank lines are skipped,
// short rows are padded with nulls, and a row with more fields than the
// header is an error.
func ReadCSV(data []byte) (*Dataset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	if !hasUTF16BOM(data) && !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: file is not valid UTF-8", ErrEncoding)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	rows := make([][]token, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: expected %d fields in line %d, saw %d",
				ErrInvalidCSV, len(header), i+2, len(record))
		}
		row := make([]token, len(record))
		for c, field := range record {
			row[c] = parseCSVToken(field)
		}
		rows = append(rows, row)
	}

	return buildDataset(header, rows), nil
}

// hasUTF16BOM reports whether data starts with a UTF-16 byte order mark.
func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 &&
		((data[0] == 0xFE && data[1] == 0xFF) || (data[0] == 0xFF && data[1] == 0xFE))
}
