package router

import (
	"context"

	"github.com/vango-dev/cargo/pkg/vdom"
)

// Props keys a page or layout component receives.
const (
	PropParams   = "params"
	PropData     = "data"
	PropChildren = "children"
)

// PageMeta contains page metadata rendered into the document head.
type PageMeta struct {
	Title       string
	Description string
	Robots      string
}

// DataLoader loads the data a page renders. It runs once per request,
// before the page component.
type DataLoader func(ctx context.Context, params map[string]string) (any, error)

// Route binds a path pattern to a page.
type Route struct {
	// Path is the URL pattern. Segments written {name} match any single
	// non-empty segment and are passed to the page as params.
	Path string

	// Page renders the page. It receives PropParams and PropData.
	Page vdom.ComponentFunc

	// Layouts wrap the page, innermost first. Each receives PropParams,
	// PropData and PropChildren.
	Layouts []vdom.ComponentFunc

	// Data optionally loads PropData.
	Data DataLoader

	// Meta is rendered into the document head.
	Meta PageMeta
}

// Match is the result of resolving a path.
type Match struct {
	Route  Route
	Params map[string]string
}

// Params returns the route params a page or layout was rendered with.
func Params(p vdom.Props) map[string]string {
	params, _ := p[PropParams].(map[string]string)
	return params
}

// Children returns the wrapped content a layout was rendered with.
func Children(p vdom.Props) *vdom.VNode {
	children, _ := p[PropChildren].(*vdom.VNode)
	return children
}
