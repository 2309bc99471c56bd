package render

import (
	"io"

	"github.com/vango-dev/cargo/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// Links contains link tags (favicon, preload, etc.).
	Links []LinkTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS styles.
	Styles []string

	// HeadScripts are written at the end of <head>.
	HeadScripts []ScriptTag

	// BodyScripts are written after the page content, e.g. the island
	// bootstrap module.
	BodyScripts []ScriptTag
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string // name attribute
	Content  string // content attribute
	Property string // property attribute (for OpenGraph)
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string
	Href string
	Type string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Module bool   // type="module"
	Defer  bool   // defer attribute
	Inline string // inline script content
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return r.RenderToWriter(w, Document(page))
}

// Document builds the virtual <html> tree for page.
func Document(page PageData) *vdom.VNode {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	return vdom.Html(vdom.Lang(lang),
		head(page),
		vdom.Body(
			page.Body,
			scripts(page.BodyScripts),
		),
	)
}

// head builds the document head: charset and viewport first, then meta,
// links, stylesheets, inline styles, scripts, and the title last.
func head(page PageData) *vdom.VNode {
	children := []*vdom.VNode{
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
	}

	for _, m := range page.Meta {
		children = append(children, vdom.Meta(
			vdom.AttrIf(m.Name != "", vdom.Name(m.Name)),
			vdom.AttrIf(m.Property != "", vdom.AttrKV("property", m.Property)),
			vdom.Content(m.Content),
		))
	}
	for _, l := range page.Links {
		children = append(children, vdom.Link(
			vdom.Rel(l.Rel),
			vdom.Href(l.Href),
			vdom.AttrIf(l.Type != "", vdom.Type(l.Type)),
		))
	}
	for _, href := range page.StyleSheets {
		children = append(children, vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href)))
	}
	for _, css := range page.Styles {
		children = append(children, vdom.Style(vdom.Text(css)))
	}
	children = append(children, scripts(page.HeadScripts)...)
	children = append(children, vdom.If(page.Title != "", vdom.Title(vdom.Text(page.Title))))

	return vdom.Head(children)
}

func scripts(tags []ScriptTag) []*vdom.VNode {
	out := make([]*vdom.VNode, 0, len(tags))
	for _, s := range tags {
		out = append(out, vdom.Script(
			vdom.AttrIf(s.Src != "", vdom.Src(s.Src)),
			vdom.AttrIf(s.Module, vdom.Type("module")),
			vdom.AttrIf(s.Defer, vdom.AttrKV("defer", true)),
			vdom.When(s.Inline != "", func() *vdom.VNode { return vdom.Text(s.Inline) }),
		))
	}
	return out
}
