package core

import (
	"math"
	"strconv"
	"strings"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// FormatFloat renders a float the way the CSV export writes it: shortest
// round-trip digits, a trailing ".0" on integral values, and exponent
// notation below 1e-4 or from 1e16 upward.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatBool writes the capitalised literals spreadsheets use.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// timeLayout picks the date-only layout when every value in the column
// falls on midnight.
func timeLayout(c *Column) string {
	for _, v := range c.Values {
		if v.Null {
			continue
		}
		t := v.Time
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
			return dateTimeLayout
		}
	}
	return dateLayout
}

// cellFormatter returns a function that renders cells of c as text.
// Nulls render as the empty string.
func cellFormatter(c *Column) func(Value) string {
	switch c.Kind {
	case KindInt:
		return func(v Value) string {
			if v.Null {
				return ""
			}
			return strconv.FormatInt(v.Int, 10)
		}
	case KindFloat:
		return func(v Value) string {
			if v.Null {
				return ""
			}
			return FormatFloat(v.Float)
		}
	case KindBool:
		return func(v Value) string {
			if v.Null {
				return ""
			}
			return formatBool(v.Bool)
		}
	case KindTime:
		layout := timeLayout(c)
		return func(v Value) string {
			if v.Null {
				return ""
			}
			return v.Time.Format(layout)
		}
	default:
		return func(v Value) string {
			if v.Null {
				return ""
			}
			return v.Text
		}
	}
}

// FormatColumn renders every cell of c.
func FormatColumn(c *Column) []string {
	format := cellFormatter(c)
	out := make([]string, len(c.Values))
	for i, v := range c.Values {
		out[i] = format(v)
	}
	return out
}

// textOf renders a typed token as it appears inside a mixed (object)
// column.
func textOf(t token) string {
	switch t.kind {
	case KindInt:
		if t.raw != "" {
			return t.raw
		}
		return strconv.FormatInt(t.value.Int, 10)
	case KindFloat:
		if t.raw != "" {
			return t.raw
		}
		return FormatFloat(t.value.Float)
	case KindBool:
		if t.raw != "" {
			return t.raw
		}
		return formatBool(t.value.Bool)
	case KindTime:
		return t.value.Time.Format(dateTimeLayout)
	default:
		return t.value.Text
	}
}
