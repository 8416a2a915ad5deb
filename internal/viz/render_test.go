package viz

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
)

func testDataset(t *testing.T) *core.Dataset {
	t.Helper()
	d, err := core.ReadCSV([]byte("label,price,qty,gap,flat\na,1.5,3,,7\nb,,4,,7\nc,2.5,-1,,7\nd,4,8,,7\n"))
	require.NoError(t, err)
	return d
}

func TestRender(t *testing.T) {
	d := testDataset(t)

	tests := []struct {
		kind   core.ChartKind
		column string
		title  string
	}{
		{core.ChartBar, "price", "Bar Chart - price"},
		{core.ChartLine, "price", "Line Chart - price"},
		{core.ChartHistogram, "price", "Histogram - price"},
		{core.ChartBar, "qty", "Bar Chart - qty"},
		{core.ChartLine, "flat", "Line Chart - flat"},
		{core.ChartHistogram, "flat", "Histogram - flat"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.kind, d, tt.column))

			svg := buf.String()
			assert.True(t, strings.HasPrefix(strings.TrimSpace(svg), "<svg"), "output is SVG")
			assert.Contains(t, svg, tt.title)
		})
	}
}

func TestRender_AfterDedupeUsesIndexLabels(t *testing.T) {
	d, err := core.ReadCSV([]byte("v\n1\n1\n2\n"))
	require.NoError(t, err)
	deduped := core.Deduplicate(d)
	require.Equal(t, []int{0, 2}, deduped.Index)

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, core.ChartBar, deduped, "v"))
}

func TestRender_Errors(t *testing.T) {
	d := testDataset(t)

	tests := []struct {
		name    string
		kind    core.ChartKind
		column  string
		wantErr error
	}{
		{"unknown column", core.ChartBar, "nope", ErrUnknownColumn},
		{"text column", core.ChartBar, "label", ErrNotNumeric},
		{"all missing", core.ChartLine, "gap", ErrNoValues},
		{"bad kind", core.ChartKind("pie"), "price", core.ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, tt.kind, d, tt.column)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Zero(t, buf.Len(), "nothing written on error")
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Histogram - score", Title(core.ChartHistogram, "score"))
}
