package core

// infer.go turns raw cells into typed columns.
//
// Both readers produce one token per cell. A CSV token starts life as text
// and is parsed here; an XLSX token already carries the workbook's own cell
// type. inferColumn then settles on one Kind for the whole column using the
// same rules for both formats:
//
//   - integers only, no nulls        -> Int
//   - integers with nulls, or floats -> Float
//   - booleans only                  -> Bool
//   - dates only                     -> Time
//   - rows present but all null      -> Float
//   - anything else                  -> Text

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// naTokens are the cell contents read as missing values, in CSV and XLSX
// alike.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// token is one parsed cell prior to column inference.
type token struct {
	null  bool
	kind  Kind
	value Value

	// raw keeps the original CSV text so a cell that ends up in a Text
	// column is exported exactly as it was uploaded.
	raw string
}

var nullToken = token{null: true}

// parseCSVToken classifies a single CSV field.
func parseCSVToken(s string) token {
	if naTokens[s] {
		return nullToken
	}

	trimmed := strings.TrimSpace(s)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return token{kind: KindInt, value: Value{Int: i}, raw: s}
	}
	if looksDecimal(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) {
			return token{kind: KindFloat, value: Value{Float: f}, raw: s}
		}
	}

	switch s {
	case "True", "TRUE", "true":
		return token{kind: KindBool, value: Value{Bool: true}, raw: s}
	case "False", "FALSE", "false":
		return token{kind: KindBool, value: Value{Bool: false}, raw: s}
	}

	return token{kind: KindText, value: Value{Text: s}, raw: s}
}

// looksDecimal rejects spellings strconv accepts but a CSV reader should
// not treat as numbers, such as hex floats and digit separators.
func looksDecimal(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, "xXpP_")
}

// inferColumn settles the kind of a column and converts its tokens.
func inferColumn(name string, tokens []token) *Column {
	var ints, floats, bools, times, nonNull int
	hasNull := false
	for _, t := range tokens {
		if t.null {
			hasNull = true
			continue
		}
		nonNull++
		switch t.kind {
		case KindInt:
			ints++
		case KindFloat:
			floats++
		case KindBool:
			bools++
		case KindTime:
			times++
		}
	}

	col := &Column{Name: name, Values: make([]Value, len(tokens))}

	switch {
	case nonNull == 0 && len(tokens) == 0:
		col.Kind = KindText
	case nonNull == 0:
		col.Kind = KindFloat
	case ints == nonNull && !hasNull:
		col.Kind = KindInt
	case ints+floats == nonNull:
		col.Kind = KindFloat
	case bools == nonNull:
		col.Kind = KindBool
	case times == nonNull:
		col.Kind = KindTime
	default:
		col.Kind = KindText
	}

	for i, t := range tokens {
		if t.null {
			col.Values[i] = Null
			continue
		}
		switch col.Kind {
		case KindFloat:
			if t.kind == KindInt {
				col.Values[i] = Value{Float: float64(t.value.Int)}
			} else {
				col.Values[i] = t.value
			}
		case KindText:
			col.Values[i] = Value{Text: textOf(t)}
		default:
			col.Values[i] = t.value
		}
	}

	return col
}

// mangleHeaders names blank header cells "Unnamed: <i>" and suffixes
// repeated names with ".1", ".2", ... so every column name is unique.
func mangleHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			candidate := fmt.Sprintf("%s.%d", name, n)
			for seen[candidate] > 0 {
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
			}
			seen[name] = n + 1
			name = candidate
		}
		seen[name]++
		out[i] = name
	}
	return out
}

// buildDataset infers every column from a header and rows of tokens.
// Rows shorter than the header are padded with nulls.
func buildDataset(header []string, rows [][]token) *Dataset {
	names := mangleHeaders(header)
	cols := make([]*Column, len(names))
	for c, name := range names {
		tokens := make([]token, len(rows))
		for r, row := range rows {
			if c < len(row) {
				tokens[r] = row[c]
			} else {
				tokens[r] = nullToken
			}
		}
		cols[c] = inferColumn(name, tokens)
	}

	return NewDataset(cols)
}
