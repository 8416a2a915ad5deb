// Package templates renders the Data Cleaner pages with gomponents.
//
// Every exported function returns a templ.Component so handlers can write
// a whole page or hand a fragment to datastar for an SSE patch through the
// same interface.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// DatastarScript is the client bundle the page loads. The CSP in the web
// server allows its origin.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"

// AppTitle is shown in the browser tab and the page heading.
const AppTitle = "Data Cleaner"

// component adapts a gomponents node to templ.
func component(n Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return n.Render(w)
	})
}

func layout(body ...Node) Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(AppTitle)),
				Link(Rel("icon"), Href("data:,")),
				Link(Rel("stylesheet"), Href("/static/app.css")),
				Script(Type("module"), Src(DatastarScript)),
			),
			Body(
				Main(Class("page"),
					H1(Class("page-title"), Text(AppTitle)),
					Group(body),
				),
			),
		),
	)
}
