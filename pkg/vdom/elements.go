package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Props, LifecycleHook, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			if v.Key != "" {
				node.Props[v.Key] = v.Value
			}

		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.Props[a.Key] = a.Value
				}
			}

		case Props:
			for key, value := range v {
				node.Props[key] = value
			}

		case LifecycleHook:
			node.addHook(v)

		case []LifecycleHook:
			for _, h := range v {
				node.addHook(h)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// Element creates an element with an arbitrary tag name.
func Element(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

// Document structure elements

func Html(args ...any) *VNode  { return createElement("html", args) }
func Head(args ...any) *VNode  { return createElement("head", args) }
func Body(args ...any) *VNode  { return createElement("body", args) }
func Title(args ...any) *VNode { return createElement("title", args) }
func Meta(args ...any) *VNode  { return createElement("meta", args) }
func Link(args ...any) *VNode  { return createElement("link", args) }

// Content elements

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Article(args ...any) *VNode { return createElement("article", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }
func Div(args ...any) *VNode     { return createElement("div", args) }
func P(args ...any) *VNode       { return createElement("p", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func Pre(args ...any) *VNode     { return createElement("pre", args) }
func Ul(args ...any) *VNode      { return createElement("ul", args) }
func Ol(args ...any) *VNode      { return createElement("ol", args) }
func Li(args ...any) *VNode      { return createElement("li", args) }
func Hr(args ...any) *VNode      { return createElement("hr", args) }
func Br(args ...any) *VNode      { return createElement("br", args) }
func A(args ...any) *VNode       { return createElement("a", args) }
func Strong(args ...any) *VNode  { return createElement("strong", args) }
func Em(args ...any) *VNode      { return createElement("em", args) }
func B(args ...any) *VNode       { return createElement("b", args) }
func Code(args ...any) *VNode    { return createElement("code", args) }
func Img(args ...any) *VNode     { return createElement("img", args) }

// Form elements

func Form(args ...any) *VNode     { return createElement("form", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }

// Table elements

func Table(args ...any) *VNode { return createElement("table", args) }
func Thead(args ...any) *VNode { return createElement("thead", args) }
func Tbody(args ...any) *VNode { return createElement("tbody", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Th(args ...any) *VNode    { return createElement("th", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }

// SVG elements

func Svg(args ...any) *VNode     { return createElement("svg", args) }
func G(args ...any) *VNode       { return createElement("g", args) }
func Circle(args ...any) *VNode  { return createElement("circle", args) }
func Rect(args ...any) *VNode    { return createElement("rect", args) }
func Line(args ...any) *VNode    { return createElement("line", args) }
func Path(args ...any) *VNode    { return createElement("path", args) }
func Polygon(args ...any) *VNode { return createElement("polygon", args) }
func SvgText(args ...any) *VNode { return createElement("text", args) }
func ForeignObject(args ...any) *VNode {
	return createElement("foreignObject", args)
}

// Scripting elements

func Script(args ...any) *VNode   { return createElement("script", args) }
func Noscript(args ...any) *VNode { return createElement("noscript", args) }
func Template(args ...any) *VNode { return createElement("template", args) }
func Style(args ...any) *VNode    { return createElement("style", args) }
