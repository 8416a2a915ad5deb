package core

// clean.go implements the two cleaning toggles.
//
// Deduplicate runs first, then Fill. Each returns a new Dataset; the
// input is never modified. Cleaning only drops rows or replaces missing
// cells, so the column set of the result always matches the input.

import (
	"fmt"
)

// FillStrategy selects how missing cells are replaced.
type FillStrategy string

const (
	FillMean    FillStrategy = "mean"
	FillMedian  FillStrategy = "median"
	FillMode    FillStrategy = "mode"
	FillForward FillStrategy = "ffill"
)

// FillStrategies lists the strategies in the order the UI offers them.
var FillStrategies = []FillStrategy{FillMean, FillMedian, FillMode, FillForward}

// Label returns the name shown to users.
func (s FillStrategy) Label() string {
	switch s {
	case FillMean:
		return "Mean"
	case FillMedian:
		return "Median"
	case FillMode:
		return "Mode"
	case FillForward:
		return "Forward Fill"
	default:
		return string(s)
	}
}

// Deduplicate drops every row that repeats an earlier row, keeping the
// first occurrence and the original order.
func Deduplicate(d *Dataset) *Dataset {
	seen := make(map[string]struct{}, d.NumRows())
	keep := make([]int, 0, d.NumRows())
	for r := 0; r < d.NumRows(); r++ {
		key := rowKey(d, r)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, r)
	}
	return d.selectRows(keep)
}

// Fill replaces missing cells using the given strategy.
//
// Mean and Median only touch numeric columns; missing cells in other
// columns are left as they are. Mode fills every column that has at least
// one value. Forward fill copies the previous value down each column and
// leaves leading gaps empty.
func Fill(d *Dataset, strategy FillStrategy) (*Dataset, error) {
	out := d.Clone()
	switch strategy {
	case FillMean:
		fillNumeric(out, columnMean)
	case FillMedian:
		fillNumeric(out, columnMedian)
	case FillMode:
		for _, c := range out.Columns {
			if mode, ok := columnMode(c); ok {
				fillConstant(c, mode)
			}
		}
	case FillForward:
		for _, c := range out.Columns {
			forwardFill(c)
		}
	default:
		return nil, fmt.Errorf("%w: unknown fill strategy %q", ErrInvalidSelection, strategy)
	}
	return out, nil
}

// fillNumeric fills numeric columns with a statistic of their own values.
// An Int column that has gaps becomes Float so it can hold the statistic.
func fillNumeric(d *Dataset, stat func(*Column) (float64, bool)) {
	for _, c := range d.Columns {
		if !c.Kind.Numeric() || c.NullCount() == 0 {
			continue
		}
		v, ok := stat(c)
		if !ok {
			continue
		}
		if c.Kind == KindInt {
			promoteToFloat(c)
		}
		fillConstant(c, Value{Float: v})
	}
}

func fillConstant(c *Column, v Value) {
	for i := range c.Values {
		if c.Values[i].Null {
			c.Values[i] = v
		}
	}
}

func forwardFill(c *Column) {
	last := Null
	for i, v := range c.Values {
		if v.Null {
			c.Values[i] = last
			continue
		}
		last = v
	}
}

func promoteToFloat(c *Column) {
	for i, v := range c.Values {
		if !v.Null {
			c.Values[i] = Value{Float: float64(v.Int)}
		}
	}
	c.Kind = KindFloat
}

// CleanResult is the outcome of applying a selection to a dataset.
type CleanResult struct {
	Dataset  *Dataset
	Messages []string
}

// Clean applies the enabled toggles in their fixed order: deduplicate,
// then fill. With neither enabled the input is returned unchanged.
func Clean(d *Dataset, sel Selection) (CleanResult, error) {
	res := CleanResult{Dataset: d}

	if sel.Dedupe {
		res.Dataset = Deduplicate(res.Dataset)
		res.Messages = append(res.Messages, "Duplicate rows removed")
	}

	if sel.Fill {
		strategy := sel.FillStrategy()
		filled, err := Fill(res.Dataset, strategy)
		if err != nil {
			return CleanResult{}, err
		}
		res.Dataset = filled
		res.Messages = append(res.Messages, "Missing values filled using "+strategy.Label())
	}

	return res, nil
}
