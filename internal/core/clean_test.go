package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReadCSV(t *testing.T, data string) *Dataset {
	t.Helper()
	d, err := ReadCSV([]byte(data))
	require.NoError(t, err)
	return d
}

func nullCounts(d *Dataset) map[string]int {
	out := make(map[string]int, len(d.Columns))
	for _, c := range d.Columns {
		out[c.Name] = c.NullCount()
	}
	return out
}

const messyCSV = "city,temp,rain,note\n" +
	"Oslo,3,,cold\n" +
	"Rome,,2.5,\n" +
	"Oslo,3,,cold\n" +
	",18,0.5,warm\n" +
	"Rome,21,,\n" +
	"Oslo,3,,cold\n"

func TestDeduplicate(t *testing.T) {
	d := mustReadCSV(t, messyCSV)
	require.Equal(t, 2, DuplicateCount(d))

	once := Deduplicate(d)
	assert.Equal(t, 4, once.NumRows())
	assert.Equal(t, 0, DuplicateCount(once))
	assert.Equal(t, []int{0, 1, 3, 4}, once.Index)

	twice := Deduplicate(once)
	assert.Equal(t, once, twice)

	assert.Equal(t, 6, d.NumRows(), "input must not change")
}

func TestDeduplicate_NullsCompareEqual(t *testing.T) {
	d := mustReadCSV(t, "A,B\n1,\n1,\n2,5\n")
	out := Deduplicate(d)
	assert.Equal(t, 2, out.NumRows())
}

func TestFill_ForwardFill(t *testing.T) {
	d := mustReadCSV(t, messyCSV)
	out, err := Fill(d, FillForward)
	require.NoError(t, err)

	for ci, c := range d.Columns {
		for r, v := range c.Values {
			if !v.Null {
				assert.Equal(t, v, out.Columns[ci].Values[r], "column %s row %d changed", c.Name, r)
			}
		}
	}

	rain, _ := out.Column("rain")
	assert.True(t, rain.Values[0].Null, "leading gap stays empty")
	assert.Equal(t, 2.5, rain.Values[2].Float)
	assert.Equal(t, 0.5, rain.Values[5].Float)

	city, _ := out.Column("city")
	assert.Equal(t, "Oslo", city.Values[3].Text)
}

func TestFill_MeanMedianSkipNonNumeric(t *testing.T) {
	d := mustReadCSV(t, messyCSV)
	before := nullCounts(d)

	for _, strategy := range []FillStrategy{FillMean, FillMedian} {
		t.Run(string(strategy), func(t *testing.T) {
			out, err := Fill(d, strategy)
			require.NoError(t, err)

			after := nullCounts(out)
			assert.Equal(t, before["city"], after["city"])
			assert.Equal(t, before["note"], after["note"])
			assert.Zero(t, after["temp"])
			assert.Zero(t, after["rain"])
		})
	}
}

func TestFill_MeanAndMedianValues(t *testing.T) {
	d := mustReadCSV(t, "x,y\n1,a\n,b\n2,c\n,d\n9,e\n")

	mean, err := Fill(d, FillMean)
	require.NoError(t, err)
	x, _ := mean.Column("x")
	assert.Equal(t, KindFloat, x.Kind)
	assert.Equal(t, 4.0, x.Values[1].Float)

	median, err := Fill(d, FillMedian)
	require.NoError(t, err)
	x, _ = median.Column("x")
	assert.Equal(t, 2.0, x.Values[3].Float)
}

func TestFill_IntColumnWithoutGapsKeepsKind(t *testing.T) {
	d := mustReadCSV(t, "a,b\n1,\n2,3\n")
	out, err := Fill(d, FillMean)
	require.NoError(t, err)

	a, _ := out.Column("a")
	assert.Equal(t, KindInt, a.Kind)
}

func TestFill_Mode(t *testing.T) {
	d := mustReadCSV(t, messyCSV+",,,\n")
	out, err := Fill(d, FillMode)
	require.NoError(t, err)

	for _, c := range out.Columns {
		assert.Zero(t, c.NullCount(), "column %s", c.Name)
	}

	city, _ := out.Column("city")
	assert.Equal(t, "Oslo", city.Values[3].Text)
	temp, _ := out.Column("temp")
	assert.Equal(t, 3.0, temp.Values[1].Float)
}

func TestFill_ModeTiePicksSmallest(t *testing.T) {
	d := mustReadCSV(t, "n,s\n5,b\n2,a\n,\n5,a\n2,b\n")
	out, err := Fill(d, FillMode)
	require.NoError(t, err)

	n, _ := out.Column("n")
	s, _ := out.Column("s")
	assert.Equal(t, 2.0, n.Values[2].Float)
	assert.Equal(t, "a", s.Values[2].Text)
}

func TestFill_AllNullColumnStaysNull(t *testing.T) {
	d := mustReadCSV(t, "a,b\n1,\n2,\n")
	for _, strategy := range FillStrategies {
		out, err := Fill(d, strategy)
		require.NoError(t, err)
		b, _ := out.Column("b")
		assert.Equal(t, 2, b.NullCount(), "strategy %s", strategy)
	}
}

func TestFill_UnknownStrategy(t *testing.T) {
	d := mustReadCSV(t, "a\n1\n")
	_, err := Fill(d, FillStrategy("interpolate"))
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		sel      Selection
		wantRows int
		wantMsgs []string
	}{
		{
			name:     "nothing selected",
			sel:      DefaultSelection(),
			wantRows: 3,
		},
		{
			name:     "dedupe only",
			sel:      Selection{Dedupe: true},
			wantRows: 2,
			wantMsgs: []string{"Duplicate rows removed"},
		},
		{
			name:     "fill only",
			sel:      Selection{Fill: true, FillMethod: FillMedian},
			wantRows: 3,
			wantMsgs: []string{"Missing values filled using Median"},
		},
		{
			name:     "both in order",
			sel:      Selection{Dedupe: true, Fill: true, FillMethod: FillForward},
			wantRows: 2,
			wantMsgs: []string{"Duplicate rows removed", "Missing values filled using Forward Fill"},
		},
		{
			name:     "fill without method uses mean",
			sel:      Selection{Fill: true},
			wantRows: 3,
			wantMsgs: []string{"Missing values filled using Mean"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustReadCSV(t, "A,B\n1,\n1,\n2,5\n")
			res, err := Clean(d, tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, res.Dataset.NumRows())
			assert.Equal(t, tt.wantMsgs, res.Messages)
			assert.Equal(t, d.Names(), res.Dataset.Names())
		})
	}
}

func TestClean_NothingSelectedReturnsInput(t *testing.T) {
	d := mustReadCSV(t, "A\n1\n")
	res, err := Clean(d, Selection{})
	require.NoError(t, err)
	assert.Same(t, d, res.Dataset)
}

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr bool
	}{
		{name: "defaults", sel: DefaultSelection()},
		{name: "zero value", sel: Selection{}},
		{name: "all options", sel: Selection{Dedupe: true, Fill: true, FillMethod: FillForward, ChartKind: ChartHistogram, Column: "x"}},
		{name: "bad fill method", sel: Selection{FillMethod: "interpolate"}, wantErr: true},
		{name: "bad chart", sel: Selection{ChartKind: "pie"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSelection), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
