package templates

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
)

// PageData is everything the full page needs.
type PageData struct {
	// Result is nil until the session has an upload that parsed.
	Result *core.Result

	// Alert is shown above the upload form, e.g. after a rejected upload.
	Alert *core.UserMessage

	PreviewRows int
	MaxFileSize int64
}

// Page renders the upload form and, when a result exists, the workspace.
func Page(p PageData) templ.Component {
	body := []Node{
		Iff(p.Alert != nil, func() Node { return alert(*p.Alert) }),
		uploadForm(p),
	}
	if p.Result != nil {
		body = append(body, workspace(p.Result, p.PreviewRows))
	}
	return component(layout(body...))
}

func uploadForm(p PageData) Node {
	hint := "Accepted types: " + strings.Join(core.AcceptedExtensions, ", ")
	if p.MaxFileSize > 0 {
		hint += fmt.Sprintf(" (up to %s)", humanBytes(p.MaxFileSize))
	}

	return Section(Class("card upload"),
		H2(Text("Upload a CSV or Excel file")),
		Form(
			Method("post"),
			Action("/upload"),
			Attr("enctype", "multipart/form-data"),
			Input(
				Type("file"),
				Name("file"),
				ID("file"),
				Accept(strings.Join(core.AcceptedExtensions, ",")),
				Required(),
			),
			Button(Type("submit"), Class("btn"), Text("Upload")),
		),
		P(Class("hint"), Text(hint)),
		Iff(p.Result != nil, func() Node {
			return Div(Class("upload-current"),
				Span(Text("Current file: ")),
				Strong(Text(p.Result.Filename)),
				Form(Method("post"), Action("/reset"), Class("inline"),
					Button(Type("submit"), Class("btn btn-secondary"), Text("Clear")),
				),
			)
		}),
	)
}

// workspace holds the cleaning controls and the results they drive. The
// controls post the whole selection on every change and the server
// answers with a patch of #results.
func workspace(res *core.Result, previewRows int) Node {
	return Div(Class("workspace"),
		controls(res),
		results(res, previewRows),
	)
}

// Signal names are lower case so they survive HTML attribute folding.
// Selection decodes them case-insensitively.
const (
	sigDedupe     = "dedupe"
	sigFill       = "fill"
	sigFillMethod = "fillmethod"
	sigChartKind  = "chartkind"
	sigColumn     = "column"
)

func controls(res *core.Result) Node {
	sel := res.Selection
	return Section(
		ID("controls"),
		Class("card controls"),
		data.Signals(map[string]any{
			sigDedupe:     sel.Dedupe,
			sigFill:       sel.Fill,
			sigFillMethod: string(sel.FillStrategy()),
			sigChartKind:  string(sel.Chart()),
			sigColumn:     sel.Column,
		}),
		Attr("data-on:change", "@post('/api/pipeline')"),

		H2(Text("Data Cleaning Options")),
		checkbox("opt-dedupe", sigDedupe, "Remove Duplicate Rows", sel.Dedupe),
		checkbox("opt-fill", sigFill, "Fill Missing Values", sel.Fill),
		Div(Class("field"), data.Show("$"+sigFill),
			Label(For("opt-fill-method"), Text("Fill method")),
			selectField("opt-fill-method", sigFillMethod, fillOptions(), string(sel.FillStrategy())),
		),

		If(len(res.NumericColumns) > 0, Group{
			H2(Text("Visualization")),
			Div(Class("field"),
				Label(For("opt-chart"), Text("Chart type")),
				selectField("opt-chart", sigChartKind, chartOptions(), string(sel.Chart())),
			),
			Div(Class("field"),
				Label(For("opt-column"), Text("Column")),
				selectField("opt-column", sigColumn, columnOptions(res.NumericColumns), sel.Column),
			),
		}),
	)
}

type option struct {
	Value string
	Label string
}

func fillOptions() []option {
	opts := make([]option, len(core.FillStrategies))
	for i, s := range core.FillStrategies {
		opts[i] = option{Value: string(s), Label: s.Label()}
	}
	return opts
}

func chartOptions() []option {
	opts := make([]option, len(core.ChartKinds))
	for i, k := range core.ChartKinds {
		opts[i] = option{Value: string(k), Label: k.Label()}
	}
	return opts
}

func columnOptions(names []string) []option {
	opts := make([]option, len(names))
	for i, n := range names {
		opts[i] = option{Value: n, Label: n}
	}
	return opts
}

func checkbox(id, signal, label string, checked bool) Node {
	return Div(Class("field checkbox"),
		Input(Type("checkbox"), ID(id), data.Bind(signal), If(checked, Checked())),
		Label(For(id), Text(label)),
	)
}

func selectField(id, signal string, opts []option, current string) Node {
	return Select(ID(id), data.Bind(signal),
		Map(opts, func(o option) Node {
			return Option(Value(o.Value), If(o.Value == current, Selected()), Text(o.Label))
		}),
	)
}

func alert(msg core.UserMessage) Node {
	return Div(Class("alert alert-error"), Role("alert"),
		Strong(Text(msg.Message)),
		If(msg.Action != "", P(Text(msg.Action))),
		If(msg.Code != "", Span(Class("code"), Text("Code: "+msg.Code))),
	)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.0f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
