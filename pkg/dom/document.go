package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Namespace URIs accepted by CreateElementNS.
const (
	NamespaceHTML = "http://www.w3.org/1999/xhtml"
	NamespaceSVG  = "http://www.w3.org/2000/svg"
)

// svgNamespace is the short namespace name x/net/html stores on SVG elements.
const svgNamespace = "svg"

var (
	// ErrNilNode is returned when a required node argument is nil.
	ErrNilNode = errors.New("dom: nil node")

	// ErrNotChild is returned when a node is not a child of the given parent.
	ErrNotChild = errors.New("dom: node is not a child of parent")

	// ErrHierarchy is returned when an insertion would make a node its own ancestor.
	ErrHierarchy = errors.New("dom: hierarchy request error")

	// ErrNotElement is returned when an element-only operation targets another node type.
	ErrNotElement = errors.New("dom: node is not an element")
)

// Document is a live HTML document.
type Document struct {
	root *html.Node
}

// New creates an empty document.
func New() *Document {
	return &Document{root: &html.Node{Type: html.DocumentNode}}
}

// Load parses r as a full HTML document.
func Load(r io.Reader) (*Document, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// LoadString parses s as a full HTML document.
func LoadString(s string) (*Document, error) {
	return Load(strings.NewReader(s))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the document's body element, or nil.
func (d *Document) Body() *html.Node {
	return Body(d.root)
}

// GetElementByID returns the first element whose id attribute equals id.
func (d *Document) GetElementByID(id string) *html.Node {
	return FindElement(d.root, func(n *html.Node) bool {
		v, ok := GetAttribute(n, "id")
		return ok && v == id
	})
}

// CreateElement creates an HTML element.
func (d *Document) CreateElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateElementNS creates an element in the given namespace.
// Unknown namespaces are stored verbatim.
func (d *Document) CreateElementNS(namespace, tag string) *html.Node {
	n := &html.Node{
		Type: html.ElementNode,
		Data: tag,
	}
	switch namespace {
	case NamespaceSVG, svgNamespace:
		n.Namespace = svgNamespace
	case NamespaceHTML, "":
		n.DataAtom = atom.Lookup([]byte(tag))
	default:
		n.Namespace = namespace
	}
	return n
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// AppendChild appends child to parent. A child that is already attached
// elsewhere is moved.
func (d *Document) AppendChild(parent, child *html.Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if isAncestor(child, parent) {
		return ErrHierarchy
	}
	detach(child)
	parent.AppendChild(child)
	return nil
}

// InsertBefore inserts child before ref under parent. A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref *html.Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if ref != nil && ref.Parent != parent {
		return ErrNotChild
	}
	if isAncestor(child, parent) {
		return ErrHierarchy
	}
	if child == ref {
		return nil
	}
	detach(child)
	parent.InsertBefore(child, ref)
	return nil
}

// RemoveChild removes child from parent.
func (d *Document) RemoveChild(parent, child *html.Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if child.Parent != parent {
		return ErrNotChild
	}
	parent.RemoveChild(child)
	return nil
}

// ReplaceChild puts newChild in place of oldChild under parent.
func (d *Document) ReplaceChild(parent, newChild, oldChild *html.Node) error {
	if parent == nil || newChild == nil || oldChild == nil {
		return ErrNilNode
	}
	if oldChild.Parent != parent {
		return ErrNotChild
	}
	if newChild == oldChild {
		return nil
	}
	if isAncestor(newChild, parent) {
		return ErrHierarchy
	}
	detach(newChild)
	parent.InsertBefore(newChild, oldChild)
	parent.RemoveChild(oldChild)
	return nil
}

// SetAttribute sets (or overwrites) an attribute on an element.
func (d *Document) SetAttribute(n *html.Node, name, value string) error {
	if n == nil {
		return ErrNilNode
	}
	if n.Type != html.ElementNode {
		return fmt.Errorf("%w: set %q on %s", ErrNotElement, name, nodeTypeName(n.Type))
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return nil
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

// RemoveAttribute removes an attribute. Removing a missing attribute is a no-op.
func (d *Document) RemoveAttribute(n *html.Node, name string) error {
	if n == nil {
		return ErrNilNode
	}
	if n.Type != html.ElementNode {
		return fmt.Errorf("%w: remove %q on %s", ErrNotElement, name, nodeTypeName(n.Type))
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return nil
		}
	}
	return nil
}

// SetData replaces the character data of a text or comment node.
func (d *Document) SetData(n *html.Node, data string) error {
	if n == nil {
		return ErrNilNode
	}
	if n.Type != html.TextNode && n.Type != html.CommentNode {
		return fmt.Errorf("dom: set data on %s", nodeTypeName(n.Type))
	}
	n.Data = data
	return nil
}

// IsSVG reports whether n is an element in the SVG namespace.
func (d *Document) IsSVG(n *html.Node) bool {
	return IsSVG(n)
}

// OwnerSVGElement returns the nearest ancestor <svg> element of an SVG
// element, or nil for the outermost <svg> and for non-SVG nodes.
func (d *Document) OwnerSVGElement(n *html.Node) *html.Node {
	if !IsSVG(n) {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if IsSVG(p) && p.Data == "svg" {
			return p
		}
	}
	return nil
}

// IsSVG reports whether n is an element in the SVG namespace.
func IsSVG(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Namespace == svgNamespace
}

// GetAttribute returns the value of an attribute on n.
func GetAttribute(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Parse parses a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return root, nil
}

// ParseFragment parses s as the children of a <body> element and returns them
// attached to a fresh body node.
func ParseFragment(s string) (*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

// Body returns the first <body> element under root.
func Body(root *html.Node) *html.Node {
	if root != nil && root.Type == html.ElementNode && root.DataAtom == atom.Body {
		return root
	}
	return FindElement(root, func(n *html.Node) bool {
		return n.DataAtom == atom.Body && n.Namespace == ""
	})
}

// FindElement returns the first element under root (inclusive, depth first)
// matching pred.
func FindElement(root *html.Node, pred func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && pred(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// Render writes n (and its subtree) as HTML.
func Render(w io.Writer, n *html.Node) error {
	if n == nil {
		return ErrNilNode
	}
	return html.Render(w, n)
}

// RenderString renders n to a string.
func RenderString(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) (string, error) {
	if n == nil {
		return "", ErrNilNode
	}
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// detach removes n from its current parent, if any.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// isAncestor reports whether a is n or one of n's ancestors.
func isAncestor(a, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

func nodeTypeName(t html.NodeType) string {
	switch t {
	case html.ErrorNode:
		return "error node"
	case html.TextNode:
		return "text node"
	case html.DocumentNode:
		return "document node"
	case html.ElementNode:
		return "element node"
	case html.CommentNode:
		return "comment node"
	case html.DoctypeNode:
		return "doctype node"
	case html.RawNode:
		return "raw node"
	default:
		return "unknown node"
	}
}
