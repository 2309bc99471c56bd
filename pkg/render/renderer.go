package render

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/vango-dev/cargo/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Hydration ignores whitespace-only text, so pretty output still
	// hydrates cleanly.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer handles server-side rendering of VNode trees to HTML.
// A Renderer holds no per-render state and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	sw := &stickyWriter{w: w}
	r.renderNode(sw, node, 0, false)
	return sw.err
}

// renderNode dispatches rendering based on node kind. raw is set inside
// <script> and <style>, whose text is not escaped.
func (r *Renderer) renderNode(w *stickyWriter, node *vdom.VNode, depth int, raw bool) {
	if node == nil {
		return
	}

	switch node.Kind {
	case vdom.KindElement:
		r.renderElement(w, node, depth)
	case vdom.KindText:
		if raw {
			w.writeString(node.Text)
		} else {
			w.writeString(html.EscapeString(node.Text))
		}
	case vdom.KindComponent:
		r.renderNode(w, node.AST, depth, raw)
	default:
		w.fail(fmt.Errorf("render: unknown node kind %d", node.Kind))
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w *stickyWriter, node *vdom.VNode, depth int) {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.writeString("<")
	w.writeString(tag)
	r.renderAttributes(w, node)
	w.writeString(">")

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			w.writeString("\n")
		}
		return
	}

	raw := tag == "script" || tag == "style"
	block := r.config.Pretty && len(node.Children) > 0 && !isInlineElement(tag) && !raw && hasElementChild(node)
	if block {
		w.writeString("\n")
	}

	for _, child := range node.Children {
		r.renderNode(w, child, depth+1, raw)
	}

	if block {
		r.writeIndent(w, depth)
	}
	w.writeString("</")
	w.writeString(tag)
	w.writeString(">")
	if r.config.Pretty {
		w.writeString("\n")
	}
}

// renderAttributes writes the effective attributes of node in lexical
// order. Boolean attributes are written without a value.
func (r *Renderer) renderAttributes(w *stickyWriter, node *vdom.VNode) {
	attrs := vdom.EffectiveAttrs(node)
	for _, name := range vdom.SortedKeys(attrs) {
		value := attrs[name]
		w.writeString(" ")
		w.writeString(name)
		if value == "" && vdom.IsBooleanAttr(name) {
			continue
		}
		w.writeString(`="`)
		w.writeString(html.EscapeString(value))
		w.writeString(`"`)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *stickyWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.writeString(r.config.Indent)
	}
}

// hasElementChild reports whether any child (through components) is an
// element. Text-only elements stay on one line when pretty printing.
func hasElementChild(node *vdom.VNode) bool {
	for _, child := range node.Children {
		if vdom.Unwrap(child).IsElement() {
			return true
		}
	}
	return false
}

// stickyWriter remembers the first write error and drops later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) writeString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (s *stickyWriter) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// inlineElements are rendered inline and get no newlines in pretty output.
var inlineElements = map[string]bool{
	"a":      true,
	"abbr":   true,
	"b":      true,
	"br":     true,
	"cite":   true,
	"code":   true,
	"em":     true,
	"i":      true,
	"kbd":    true,
	"label":  true,
	"mark":   true,
	"q":      true,
	"s":      true,
	"small":  true,
	"span":   true,
	"strong": true,
	"sub":    true,
	"sup":    true,
	"time":   true,
	"u":      true,
}

// isInlineElement returns true if the tag is an inline element.
func isInlineElement(tag string) bool {
	return inlineElements[tag]
}
