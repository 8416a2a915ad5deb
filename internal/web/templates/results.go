package templates

import (
	"strconv"

	"github.com/a-h/templ"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/viz"
)

// ResultsID is the element the pipeline endpoint patches.
const ResultsID = "results"

// Results renders one pipeline pass.
func Results(res *core.Result, previewRows int) templ.Component {
	return component(results(res, previewRows))
}

// ResultsError replaces the results with an alert, e.g. when the stored
// upload no longer parses or the pipeline is busy.
func ResultsError(msg core.UserMessage) templ.Component {
	return component(Div(ID(ResultsID), alert(msg)))
}

// ChartURL is the image source for the selection's chart.
func ChartURL(sel core.Selection) string {
	return "/api/chart.svg?" + sel.Query().Encode()
}

// ExportURL is the download link for the selection's cleaned data.
func ExportURL(sel core.Selection) string {
	return "/api/export?" + sel.Query().Encode()
}

func results(res *core.Result, previewRows int) Node {
	return Div(ID(ResultsID),
		Section(Class("card"),
			H2(Text("Raw Data Preview")),
			previewTable(res.Raw, previewRows),
		),
		Section(Class("card"),
			H2(Text("Data Summary")),
			summary(res.RawProfile),
			H3(Text("Missing Values")),
			missingTable(res.RawProfile),
		),
		Iff(len(res.Messages) > 0, func() Node {
			return Div(Class("messages"),
				Map(res.Messages, func(m string) Node {
					return Div(Class("alert alert-success"), Text(m))
				}),
			)
		}),
		Section(Class("card"),
			H2(Text("Cleaned Data Preview")),
			previewTable(res.Cleaned, previewRows),
			summary(res.CleanedProfile),
		),
		Section(Class("card"),
			H2(Text("Visualization")),
			Map(res.Warnings, func(w string) Node {
				return Div(Class("alert alert-warning"), Text(w))
			}),
			Iff(res.ChartAvailable, func() Node {
				title := viz.Title(res.Selection.Chart(), res.Selection.Column)
				return Figure(Class("chart"),
					Img(Src(ChartURL(res.Selection)), Alt(title), Width("800"), Height("420")),
				)
			}),
		),
		Section(Class("card"),
			H2(Text("Download Cleaned Data")),
			A(
				Href(ExportURL(res.Selection)),
				Class("btn"),
				Attr("download", core.ExportFilename),
				Text("Download as CSV"),
			),
		),
	)
}

func summary(p core.Profile) Node {
	return Div(Class("metrics"),
		metric("Rows", p.Rows),
		metric("Columns", p.Columns),
		metric("Duplicate Rows", p.DuplicateRows),
		metric("Missing Cells", p.TotalMissing()),
	)
}

func metric(label string, v int) Node {
	return Div(Class("metric"),
		Span(Class("metric-label"), Text(label)),
		Span(Class("metric-value"), Text(strconv.Itoa(v))),
	)
}

func missingTable(p core.Profile) Node {
	return Table(Class("data"),
		THead(Tr(Th(Text("Column")), Th(Text("Type")), Th(Text("Missing")))),
		TBody(Map(p.Missing, func(c core.ColumnProfile) Node {
			return Tr(Td(Text(c.Name)), Td(Text(c.Kind)), Td(Class("num"), Text(strconv.Itoa(c.Missing))))
		})),
	)
}

// previewTable shows the first rows of d with their index labels.
func previewTable(d *core.Dataset, limit int) Node {
	n := d.NumRows()
	if limit > 0 && limit < n {
		n = limit
	}

	cells := make([][]string, len(d.Columns))
	for i, c := range d.Columns {
		cells[i] = core.FormatColumn(c)
	}

	header := make([]Node, 0, len(d.Columns)+1)
	header = append(header, Th())
	for _, c := range d.Columns {
		header = append(header, Th(Text(c.Name)))
	}

	rows := make([]Node, n)
	for r := 0; r < n; r++ {
		tds := make([]Node, 0, len(d.Columns)+1)
		tds = append(tds, Th(Class("index"), Text(strconv.Itoa(d.Index[r]))))
		for i, c := range d.Columns {
			if c.Values[r].Null {
				tds = append(tds, Td(Class("null"), Text(nullText(c.Kind))))
				continue
			}
			tds = append(tds, Td(Text(cells[i][r])))
		}
		rows[r] = Tr(tds...)
	}

	return Div(Class("table-wrap"),
		Table(Class("data"),
			THead(Tr(header...)),
			TBody(rows...),
		),
		If(n < d.NumRows(), P(Class("hint"),
			Textf("Showing %d of %d rows", n, d.NumRows()),
		)),
	)
}

func nullText(k core.Kind) string {
	switch k {
	case core.KindTime:
		return "NaT"
	case core.KindText:
		return "None"
	default:
		return "NaN"
	}
}
