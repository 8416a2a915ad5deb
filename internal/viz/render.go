// Package viz renders the single chart shown for a numeric column.
//
// Charts are drawn with go-chart and written as SVG. Bars and histogram
// bins are drawn from zero by barSeries; line charts are split into one
// series per run of non-null values so that gaps stay gaps.
package viz

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotNumeric    = errors.New("column is not numeric")
	ErrNoValues      = errors.New("column has no values")
)

// ContentType is the MIME type Render writes.
const ContentType = "image/svg+xml"

const (
	width     = 800
	height    = 420
	barFactor = 0.8
)

var (
	seriesColor = drawing.ColorFromHex("1f77b4")
	edgeColor   = drawing.ColorWhite
)

// Title returns the heading of a chart, e.g. "Bar Chart - price".
func Title(kind core.ChartKind, column string) string {
	return fmt.Sprintf("%s - %s", kind.Label(), column)
}

// Render draws column of d as the given kind and writes SVG to w.
func Render(w io.Writer, kind core.ChartKind, d *core.Dataset, column string) error {
	col, ok := d.Column(column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if !col.Kind.Numeric() {
		return fmt.Errorf("%w: %q is %s", ErrNotNumeric, column, col.Kind)
	}
	values := finite(col.Floats())
	if len(values) == 0 {
		return fmt.Errorf("%w: %q", ErrNoValues, column)
	}

	var ch chart.Chart
	switch kind {
	case core.ChartBar:
		ch = barChart(d, col)
	case core.ChartLine:
		ch = lineChart(d, col)
	case core.ChartHistogram:
		ch = histogramChart(col.Name, values)
	default:
		return fmt.Errorf("%w: chart kind %q", core.ErrInvalidSelection, kind)
	}

	ch.Title = Title(kind, column)
	ch.Width = width
	ch.Height = height
	ch.Background = chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}}

	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", kind, err)
	}
	return nil
}

// points returns the index label and value of every plottable cell.
func points(d *core.Dataset, col *core.Column) (xs, ys []float64) {
	for r, v := range col.Values {
		y, ok := plottable(col, v)
		if !ok {
			continue
		}
		xs = append(xs, float64(d.Index[r]))
		ys = append(ys, y)
	}
	return xs, ys
}

// plottable returns the cell as float64; nulls and infinities are skipped.
func plottable(col *core.Column, v core.Value) (float64, bool) {
	if v.Null {
		return 0, false
	}
	if col.Kind == core.KindInt {
		return float64(v.Int), true
	}
	if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
		return 0, false
	}
	return v.Float, true
}

func finite(values []float64) []float64 {
	out := values[:0:0]
	for _, v := range values {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func barChart(d *core.Dataset, col *core.Column) chart.Chart {
	xs, ys := points(d, col)
	xlo, xhi := span(xs)
	ylo, yhi := span(ys)

	return chart.Chart{
		XAxis: indexAxis(xlo-0.5, xhi+0.5),
		YAxis: valueAxis(col.Name, math.Min(ylo, 0), math.Max(yhi, 0)),
		Series: []chart.Series{barSeries{
			name:  col.Name,
			xs:    xs,
			ys:    ys,
			width: barFactor,
			style: chart.Style{FillColor: seriesColor, StrokeColor: seriesColor, StrokeWidth: 0},
		}},
	}
}

func lineChart(d *core.Dataset, col *core.Column) chart.Chart {
	_, ys := points(d, col)
	ylo, yhi := span(ys)

	var series []chart.Series
	var xs, run []float64
	flush := func() {
		if len(xs) == 0 {
			return
		}
		series = append(series, chart.ContinuousSeries{
			Name:    col.Name,
			XValues: xs,
			YValues: run,
			Style:   chart.Style{StrokeColor: seriesColor, StrokeWidth: 1.5, DotColor: seriesColor, DotWidth: 1.5},
		})
		xs, run = nil, nil
	}
	for r, v := range col.Values {
		y, ok := plottable(col, v)
		if !ok {
			flush()
			continue
		}
		xs = append(xs, float64(d.Index[r]))
		run = append(run, y)
	}
	flush()

	xlo, xhi := float64(d.Index[0]), float64(d.Index[len(d.Index)-1])
	return chart.Chart{
		XAxis:  indexAxis(xlo, xhi),
		YAxis:  valueAxis(col.Name, ylo, yhi),
		Series: series,
	}
}

func histogramChart(name string, values []float64) chart.Chart {
	edges, counts := Histogram(values, Bins)

	centers := make([]float64, len(counts))
	heights := make([]float64, len(counts))
	top := 0.0
	for i, c := range counts {
		centers[i] = (edges[i] + edges[i+1]) / 2
		heights[i] = float64(c)
		top = math.Max(top, heights[i])
	}

	return chart.Chart{
		XAxis: chart.XAxis{
			Name:           name,
			Range:          &chart.ContinuousRange{Min: edges[0], Max: edges[len(edges)-1]},
			ValueFormatter: numberFormatter,
		},
		YAxis: valueAxis("count", 0, top),
		Series: []chart.Series{barSeries{
			name:  name,
			xs:    centers,
			ys:    heights,
			width: edges[1] - edges[0],
			style: chart.Style{FillColor: seriesColor, StrokeColor: edgeColor, StrokeWidth: 0.5},
		}},
	}
}

func indexAxis(lo, hi float64) chart.XAxis {
	lo, hi = widen(lo, hi)
	return chart.XAxis{
		Name:           "index",
		Range:          &chart.ContinuousRange{Min: lo, Max: hi},
		ValueFormatter: numberFormatter,
	}
}

func valueAxis(name string, lo, hi float64) chart.YAxis {
	lo, hi = widen(lo, hi)
	return chart.YAxis{
		Name:           name,
		Range:          &chart.ContinuousRange{Min: lo, Max: hi},
		ValueFormatter: numberFormatter,
	}
}

// span returns the smallest and largest of xs, which must be non-empty.
func span(xs []float64) (lo, hi float64) {
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// widen keeps a range from collapsing to a single point, which go-chart
// cannot scale.
func widen(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	return lo - 0.5, hi + 0.5
}

func numberFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// barSeries draws one box per point, from zero to the value, width data
// units wide and centred on x.
type barSeries struct {
	name  string
	style chart.Style
	xs    []float64
	ys    []float64
	width float64
}

func (b barSeries) GetName() string           { return b.name }
func (b barSeries) GetStyle() chart.Style     { return b.style }
func (b barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (b barSeries) Validate() error {
	if len(b.xs) != len(b.ys) {
		return fmt.Errorf("bar series %q: %d x values, %d y values", b.name, len(b.xs), len(b.ys))
	}
	return nil
}

func (b barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := b.style.InheritFrom(defaults)
	zero := canvasBox.Bottom - yrange.Translate(0)

	for i := range b.xs {
		left := canvasBox.Left + xrange.Translate(b.xs[i]-b.width/2)
		right := canvasBox.Left + xrange.Translate(b.xs[i]+b.width/2)
		if right <= left {
			right = left + 1
		}
		y := canvasBox.Bottom - yrange.Translate(b.ys[i])
		top, bottom := min(y, zero), max(y, zero)
		if top == bottom {
			continue
		}
		chart.Draw.Box(r, chart.Box{Top: top, Left: left, Right: right, Bottom: bottom}, style)
	}
}
