package core

import (
	"math"
	"strings"

	"github.com/go-gota/gota/series"
)

// columnMean returns the mean of the non-null cells of a numeric column.
// ok is false when there is nothing to average.
func columnMean(c *Column) (float64, bool) {
	values := c.Floats()
	if len(values) == 0 {
		return math.NaN(), false
	}
	return series.Floats(values).Mean(), true
}

// columnMedian returns the median of the non-null cells of a numeric
// column. ok is false when the column has no values.
func columnMedian(c *Column) (float64, bool) {
	values := c.Floats()
	if len(values) == 0 {
		return math.NaN(), false
	}
	return series.Floats(values).Median(), true
}

// columnMode returns the most frequent non-null cell. Ties go to the
// smallest value in the column's natural order.
func columnMode(c *Column) (Value, bool) {
	type bucket struct {
		value Value
		count int
	}

	buckets := make(map[string]*bucket)
	var order []string
	for _, v := range c.Values {
		if v.Null {
			continue
		}
		key := cellKey(c.Kind, v)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{value: v}
			buckets[key] = b
			order = append(order, key)
		}
		b.count++
	}
	if len(order) == 0 {
		return Null, false
	}

	var best *bucket
	for _, key := range order {
		b := buckets[key]
		switch {
		case best == nil, b.count > best.count:
			best = b
		case b.count == best.count && compareValues(c.Kind, b.value, best.value) < 0:
			best = b
		}
	}
	return best.value, true
}

// cellKey identifies a non-null cell value within a column.
func cellKey(kind Kind, v Value) string {
	single := &Dataset{
		Columns: []*Column{{Kind: kind, Values: []Value{v}}},
		Index:   []int{0},
	}
	return rowKey(single, 0)
}

// compareValues orders two non-null cells of the same kind.
func compareValues(kind Kind, a, b Value) int {
	switch kind {
	case KindInt:
		return cmpOrdered(a.Int, b.Int)
	case KindFloat:
		return cmpOrdered(a.Float, b.Float)
	case KindBool:
		return cmpOrdered(boolRank(a.Bool), boolRank(b.Bool))
	case KindTime:
		return a.Time.Compare(b.Time)
	default:
		return strings.Compare(a.Text, b.Text)
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func cmpOrdered[T int | int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
