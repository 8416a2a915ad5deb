package core

import (
	"strconv"
	"strings"
)

// ColumnProfile summarises a single column.
type ColumnProfile struct {
	Name    string `json:"name"`
	Kind    string `json:"dtype"`
	Missing int    `json:"missing"`
	Numeric bool   `json:"numeric"`
}

// Profile is the read-only summary shown above the previews.
type Profile struct {
	Rows          int             `json:"rows"`
	Columns       int             `json:"columns"`
	DuplicateRows int             `json:"duplicateRows"`
	Missing       []ColumnProfile `json:"missing"`
}

// TotalMissing returns the number of missing cells across all columns.
func (p Profile) TotalMissing() int {
	n := 0
	for _, c := range p.Missing {
		n += c.Missing
	}
	return n
}

// ProfileDataset computes counts over d. It never fails; an empty dataset
// profiles to zeros.
func ProfileDataset(d *Dataset) Profile {
	p := Profile{
		Rows:          d.NumRows(),
		Columns:       d.NumColumns(),
		DuplicateRows: DuplicateCount(d),
		Missing:       make([]ColumnProfile, len(d.Columns)),
	}
	for i, c := range d.Columns {
		p.Missing[i] = ColumnProfile{
			Name:    c.Name,
			Kind:    c.Kind.String(),
			Missing: c.NullCount(),
			Numeric: c.Kind.Numeric(),
		}
	}
	return p
}

// DuplicateCount returns how many rows repeat an earlier row in every
// column. Missing cells compare equal to each other.
func DuplicateCount(d *Dataset) int {
	seen := make(map[string]struct{}, d.NumRows())
	dups := 0
	for r := 0; r < d.NumRows(); r++ {
		key := rowKey(d, r)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// rowKey encodes row r so that two rows share a key exactly when every
// cell is equal.
func rowKey(d *Dataset, r int) string {
	var b strings.Builder
	for _, c := range d.Columns {
		v := c.Values[r]
		if v.Null {
			b.WriteString("\x00\x1f")
			continue
		}
		switch c.Kind {
		case KindInt:
			b.WriteString(strconv.FormatInt(v.Int, 10))
		case KindFloat:
			f := v.Float
			if f == 0 {
				f = 0 // -0 equals 0
			}
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		case KindBool:
			b.WriteString(strconv.FormatBool(v.Bool))
		case KindTime:
			b.WriteString(strconv.FormatInt(v.Time.UnixNano(), 10))
		default:
			b.WriteString(strconv.Quote(v.Text))
		}
		b.WriteByte('\x1f')
	}
	return b.String()
}
