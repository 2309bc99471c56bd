package vdom

import (
	"reflect"

	"golang.org/x/net/html"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText      VKind = iota // Plain text node
	KindElement                // <div>, <svg>, etc.
	KindComponent              // Component invocation, resolved through AST
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// VNode is the virtual DOM node.
//
// Which fields are meaningful depends on Kind:
//
//	KindText:      Text, NodeRef
//	KindElement:   Tag, Props, Children, NodeRef, Hooks
//	KindComponent: Fn, Props, AST
type VNode struct {
	Kind     VKind
	Tag      string        // Element tag name
	Props    Props         // Element attributes, or component props
	Children []*VNode      // Element children
	Text     string        // Text content
	Fn       ComponentFunc // Component identity
	AST      *VNode        // Component output
	NodeRef  *html.Node    // Live node owned by this text or element
	Hooks    *Hooks        // Element lifecycle hooks
}

// Clone returns a deep copy of v. Props maps and child lists are copied;
// NodeRefs and lifecycle records are shared with v.
func Clone(v *VNode) *VNode {
	if v == nil {
		return nil
	}
	c := *v
	if v.Props != nil {
		c.Props = make(Props, len(v.Props))
		for k, val := range v.Props {
			c.Props[k] = val
		}
	}
	if v.Children != nil {
		c.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			c.Children[i] = Clone(child)
		}
	}
	c.AST = Clone(v.AST)
	return &c
}

// Props holds element attributes or component props.
type Props map[string]any

// ComponentFunc renders props into a virtual tree.
type ComponentFunc func(props Props) *VNode

// Ref returns the live node owned by v. It is safe to call on a nil node.
func (v *VNode) Ref() *html.Node {
	if v == nil {
		return nil
	}
	return v.NodeRef
}

// IsText reports whether v is a text node.
func (v *VNode) IsText() bool { return v != nil && v.Kind == KindText }

// IsElement reports whether v is an element node.
func (v *VNode) IsElement() bool { return v != nil && v.Kind == KindElement }

// IsComponent reports whether v is a component node.
func (v *VNode) IsComponent() bool { return v != nil && v.Kind == KindComponent }

// Component invokes fn with props and wraps the result in a component node.
func Component(fn ComponentFunc, props Props) *VNode {
	if props == nil {
		props = Props{}
	}
	node := &VNode{
		Kind:  KindComponent,
		Fn:    fn,
		Props: props,
	}
	if fn != nil {
		node.AST = fn(props)
	}
	return node
}

// SameComponent reports whether a and b are the same component function.
func SameComponent(a, b ComponentFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}
