package core

// dataset.go defines the in-memory table every pipeline stage works on.
//
// A Dataset is never mutated once built. Cleaning steps return a new
// Dataset that shares nothing writable with its input, so the raw table
// and the cleaned table can be rendered side by side.

import (
	"time"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindTime
	KindText
)

// String returns the dtype-like name shown in the UI.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindBool:
		return "bool"
	case KindTime:
		return "datetime64"
	default:
		return "object"
	}
}

// Numeric reports whether a column of this kind can be charted and
// filled by Mean/Median.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Value is a single cell. Only the field matching the column Kind is
// meaningful; Null marks a missing cell regardless of kind.
type Value struct {
	Null  bool
	Int   int64
	Float float64
	Bool  bool
	Time  time.Time
	Text  string
}

// Null is the missing-cell value.
var Null = Value{Null: true}

// Column is a named, typed vector of cells.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// NullCount returns the number of missing cells.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.Null {
			n++
		}
	}
	return n
}

// Floats returns the non-null cells of a numeric column as float64.
// Returns nil for non-numeric columns.
func (c *Column) Floats() []float64 {
	if !c.Kind.Numeric() {
		return nil
	}
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Null {
			continue
		}
		out = append(out, c.float(v))
	}
	return out
}

// float converts a non-null numeric cell to float64.
func (c *Column) float(v Value) float64 {
	if c.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// clone returns a deep copy of the column.
func (c *Column) clone() *Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Kind: c.Kind, Values: values}
}

// Dataset is an ordered set of equal-length columns plus the original row
// label of every row.
type Dataset struct {
	Columns []*Column

	// Index holds the 0-based position each row had in the uploaded file.
	// Deduplication keeps the labels of surviving rows.
	Index []int
}

// NewDataset builds a dataset with a fresh 0..n-1 index.
func NewDataset(columns []*Column) *Dataset {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Values)
	}
	index := make([]int, rows)
	for i := range index {
		index[i] = i
	}
	return &Dataset{Columns: columns, Index: index}
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return len(d.Index)
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return len(d.Columns)
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (d *Dataset) Column(name string) (*Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// NumericColumns returns the names of Int and Float columns.
func (d *Dataset) NumericColumns() []string {
	var names []string
	for _, c := range d.Columns {
		if c.Kind.Numeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	cols := make([]*Column, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = c.clone()
	}
	index := make([]int, len(d.Index))
	copy(index, d.Index)
	return &Dataset{Columns: cols, Index: index}
}

// selectRows returns a new dataset containing only the given row positions.
func (d *Dataset) selectRows(rows []int) *Dataset {
	cols := make([]*Column, len(d.Columns))
	for i, c := range d.Columns {
		values := make([]Value, len(rows))
		for j, r := range rows {
			values[j] = c.Values[r]
		}
		cols[i] = &Column{Name: c.Name, Kind: c.Kind, Values: values}
	}
	index := make([]int, len(rows))
	for j, r := range rows {
		index[j] = d.Index[r]
	}
	return &Dataset{Columns: cols, Index: index}
}
