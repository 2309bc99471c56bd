package vdom

import (
	"log/slog"

	"golang.org/x/net/html"
)

const svgNamespaceURI = "http://www.w3.org/2000/svg"

// Document is the live-document API the appliers mutate.
type Document interface {
	CreateElement(tag string) *html.Node
	CreateElementNS(namespace, tag string) *html.Node
	CreateTextNode(data string) *html.Node
	AppendChild(parent, child *html.Node) error
	RemoveChild(parent, child *html.Node) error
	ReplaceChild(parent, newChild, oldChild *html.Node) error
	SetAttribute(n *html.Node, name, value string) error
	RemoveAttribute(n *html.Node, name string) error
	SetData(n *html.Node, data string) error

	// IsSVG reports whether n is owned by an SVG document fragment.
	IsSVG(n *html.Node) bool
}

// Applier executes changes against a live document.
//
// An Applier is not safe for concurrent use; callers must not run two
// passes over overlapping subtrees at the same time.
type Applier struct {
	doc           Document
	logger        *slog.Logger
	onUnsupported func(Change)
	onApplied     func(Change)
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithLogger sets the logger used to report unsupported changes.
func WithLogger(logger *slog.Logger) ApplierOption {
	return func(a *Applier) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithUnsupportedHandler registers a callback for skipped changes.
func WithUnsupportedHandler(fn func(Change)) ApplierOption {
	return func(a *Applier) {
		a.onUnsupported = fn
	}
}

// WithAppliedHandler registers a callback run after each successful change.
func WithAppliedHandler(fn func(Change)) ApplierOption {
	return func(a *Applier) {
		a.onApplied = fn
	}
}

// NewApplier creates an Applier bound to doc.
func NewApplier(doc Document, opts ...ApplierOption) *Applier {
	a := &Applier{
		doc:    doc,
		logger: slog.Default().With("component", "vdom"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ApplyAll applies changes in order, stopping at the first error. Changes
// before the failing one stay applied.
func (a *Applier) ApplyAll(changes ChangeSet) error {
	for _, change := range changes {
		if err := a.Apply(change); err != nil {
			return err
		}
	}
	return nil
}

// Apply performs the mutation described by change. Unsupported
// (type, action) pairs are reported and skipped.
func (a *Applier) Apply(change Change) error {
	var (
		err       error
		supported = true
	)
	switch change.Type {
	case ChangeElement:
		supported, err = a.element(change)
	case ChangeText:
		supported, err = a.text(change)
	case ChangeAttribute:
		supported, err = a.attribute(change)
	default:
		supported = false
	}

	if !supported {
		a.logger.Error("change action not supported",
			"type", string(change.Type),
			"action", string(change.Action),
			"change", change.String(),
		)
		if a.onUnsupported != nil {
			a.onUnsupported(change)
		}
		return nil
	}
	if err == nil && a.onApplied != nil {
		a.onApplied(change)
	}
	return err
}

// element applies element changes. The bool result is false for actions the
// element applier does not know.
func (a *Applier) element(change Change) (bool, error) {
	p := change.Payload
	switch change.Action {
	case ActionCreate:
		return true, a.createElement(p)
	case ActionAttach:
		return true, a.attachElement(p)
	case ActionReplace:
		return true, a.replaceElement(p)
	case ActionUpdate:
		return true, a.updateElement(p)
	case ActionDelete:
		return true, a.deleteElement(p)
	case ActionMount:
		runMount(p.VNode)
		return true, nil
	}
	return false, nil
}

func (a *Applier) createElement(p Payload) error {
	if p.VNode == nil {
		return nil
	}
	p.VNode.NodeRef = a.newElement(p.VNode, p.ParentVNode.Ref())
	return nil
}

func (a *Applier) attachElement(p Payload) error {
	v := p.VNode
	if v.IsElement() && v.NodeRef != nil {
		if err := a.doc.AppendChild(p.ParentVNode.Ref(), v.NodeRef); err != nil {
			return err
		}
	}
	runMount(v)
	return nil
}

func (a *Applier) replaceElement(p Payload) error {
	v := p.VNode
	if !v.IsElement() {
		return nil
	}
	old := v.Ref()
	var parent *html.Node
	if old != nil {
		parent = old.Parent
	}
	node := a.newElement(v, parent)
	if err := a.doc.ReplaceChild(parent, node, old); err != nil {
		return err
	}
	v.NodeRef = node
	return nil
}

func (a *Applier) updateElement(p Payload) error {
	if err := a.doc.ReplaceChild(p.ParentVNode.Ref(), p.VNode.Ref(), p.Node); err != nil {
		return err
	}
	if p.PreviousVNode != nil {
		runDestroy(p.PreviousVNode)
	}
	runMount(p.VNode)
	return nil
}

func (a *Applier) deleteElement(p Payload) error {
	if err := a.doc.RemoveChild(p.ParentVNode.Ref(), p.VNode.Ref()); err != nil {
		return err
	}
	runDestroy(p.VNode)
	return nil
}

// newElement creates the live element for v, in the SVG namespace when v is
// an <svg> or its parent already lives in SVG. Checked on every creation.
func (a *Applier) newElement(v *VNode, parent *html.Node) *html.Node {
	if isSVG(a.doc, v.Tag, parent) {
		return a.doc.CreateElementNS(svgNamespaceURI, v.Tag)
	}
	return a.doc.CreateElement(v.Tag)
}

func isSVG(doc Document, tag string, parent *html.Node) bool {
	return tag == "svg" || (parent != nil && doc.IsSVG(parent))
}

func (a *Applier) text(change Change) (bool, error) {
	p := change.Payload
	switch change.Action {
	case ActionCreate:
		if p.VNode == nil {
			return true, nil
		}
		p.VNode.NodeRef = a.doc.CreateTextNode(p.VNode.Text)
		if parent := p.ParentVNode.Ref(); parent != nil {
			return true, a.doc.AppendChild(parent, p.VNode.NodeRef)
		}
		return true, nil

	case ActionUpdate:
		return true, a.doc.SetData(p.VNode.Ref(), p.VNode.Text)

	case ActionDelete:
		node := p.VNode.Ref()
		var parent *html.Node
		if node != nil {
			parent = node.Parent
		}
		if err := a.doc.RemoveChild(parent, node); err != nil {
			return true, err
		}
		p.VNode.NodeRef = nil
		return true, nil
	}
	return false, nil
}

func (a *Applier) attribute(change Change) (bool, error) {
	p := change.Payload
	switch change.Action {
	case ActionCreate, ActionUpdate:
		return true, a.doc.SetAttribute(p.VNode.Ref(), p.Name, p.Value)
	case ActionDelete:
		return true, a.doc.RemoveAttribute(p.VNode.Ref(), p.Name)
	}
	return false, nil
}
