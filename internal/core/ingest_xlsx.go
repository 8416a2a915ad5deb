package core

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first worksheet of a workbook. The first non-blank
// row is the header; blank rows are skipped. Cell types come from the
// workbook: numbers, booleans, strings, and numbers carrying a date format.
func ReadXLSX(data []byte) (*Dataset, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	x := &xlsxReader{
		file:       f,
		sheet:      sheets[0],
		dateStyles: make(map[int]bool),
	}
	return x.read()
}

// xlsxReader holds per-sheet state while converting rows.
type xlsxReader struct {
	file  *excelize.File
	sheet string

	// dateStyles caches whether a style id carries a date number format.
	dateStyles map[int]bool
}

func (x *xlsxReader) read() (*Dataset, error) {
	rows, err := x.file.GetRows(x.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrInvalidWorkbook, x.sheet, err)
	}

	headerRow := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, ErrEmptyFile
	}

	header := append([]string(nil), rows[headerRow]...)
	var tokens [][]token
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if blankRow(row) {
			continue
		}
		// Data wider than the header gets unnamed columns.
		for len(header) < len(row) {
			header = append(header, "")
		}
		rowTokens := make([]token, len(row))
		for c, raw := range row {
			rowTokens[c] = x.token(c, i, raw)
		}
		tokens = append(tokens, rowTokens)
	}

	return buildDataset(header, tokens), nil
}

// token converts the raw value at (col,row), both 0-based, using the
// cell's stored type.
func (x *xlsxReader) token(col, row int, raw string) token {
	if naTokens[raw] {
		return nullToken
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return textToken(raw)
	}
	cellType, err := x.file.GetCellType(x.sheet, cell)
	if err != nil {
		return textToken(raw)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return token{kind: KindBool, value: Value{Bool: raw == "1" || strings.EqualFold(raw, "true")}}
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return token{kind: KindTime, value: Value{Time: t}}
		}
		return textToken(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return textToken(raw)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return textToken(raw)
	}
	if x.isDateCell(cell) {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return token{kind: KindTime, value: Value{Time: t}}
		}
	}
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return token{kind: KindInt, value: Value{Int: i}}
		}
	}
	return token{kind: KindFloat, value: Value{Float: f}}
}

// isDateCell reports whether the cell's style formats numbers as dates.
func (x *xlsxReader) isDateCell(cell string) bool {
	styleID, err := x.file.GetCellStyle(x.sheet, cell)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := x.dateStyles[styleID]; ok {
		return isDate
	}

	style, err := x.file.GetStyle(styleID)
	isDate := err == nil && isDateStyle(style)
	x.dateStyles[styleID] = isDate
	return isDate
}

// isDateStyle recognises the built-in date/time number formats and custom
// formats containing date or time placeholders.
func isDateStyle(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	id := style.NumFmt
	return (id >= 14 && id <= 22) ||
		(id >= 27 && id <= 36) ||
		(id >= 45 && id <= 47) ||
		(id >= 50 && id <= 58)
}

// isDateFormatCode strips quoted literals and bracketed sections, then
// looks for y, d, h or s placeholders.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range code {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ydhs")
}

func textToken(s string) token {
	return token{kind: KindText, value: Value{Text: s}}
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
