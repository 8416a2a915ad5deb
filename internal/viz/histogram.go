package viz

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bins is the fixed histogram bin count.
const Bins = 20

// Histogram splits values into n equal-width bins spanning [min, max].
// Every bin is half-open except the last, which includes max. When all
// values are equal the range is widened to [v-0.5, v+0.5]. edges has n+1
// entries. Both results are nil when values is empty.
func Histogram(values []float64, n int) (edges []float64, counts []int) {
	if len(values) == 0 || n <= 0 {
		return nil, nil
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	edges = floats.Span(make([]float64, n+1), lo, hi)

	// stat.Histogram bins are half-open throughout, so the last divider
	// is nudged past max to close the final bin.
	dividers := slices.Clone(edges)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	weights := stat.Histogram(nil, dividers, sorted, nil)
	counts = make([]int, n)
	for i, w := range weights {
		counts[i] = int(w)
	}
	return edges, counts
}
