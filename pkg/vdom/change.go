package vdom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ChangeType is the kind of live node a Change targets.
type ChangeType string

const (
	ChangeElement   ChangeType = "element"
	ChangeText      ChangeType = "text"
	ChangeAttribute ChangeType = "attribute"
)

// Action is the mutation a Change performs.
type Action string

const (
	ActionCreate  Action = "create"
	ActionAttach  Action = "attach"
	ActionReplace Action = "replace"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionMount   Action = "mount" // run mount hooks of an adopted element
)

// Change is a single mutation descriptor produced by Diff.
type Change struct {
	Type    ChangeType
	Action  Action
	Payload Payload
}

// Payload carries the operands of a Change. Which fields are set depends on
// the (Type, Action) pair:
//
//	element create   ParentVNode, VNode
//	element attach   ParentVNode, VNode
//	element replace  VNode
//	element update   ParentVNode, Node, VNode, PreviousVNode (optional)
//	element delete   ParentVNode, VNode
//	element mount    VNode
//	text create      ParentVNode (optional), VNode
//	text update      VNode
//	text delete      VNode
//	attribute *      VNode, Name, Value
type Payload struct {
	ParentVNode   *VNode
	VNode         *VNode
	PreviousVNode *VNode
	Node          *html.Node
	Name          string
	Value         string
}

// ChangeSet is an ordered list of changes. Order is significant.
type ChangeSet []Change

// String returns a compact one-line description of the change.
func (c Change) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s", c.Type, c.Action)
	if v := c.Payload.VNode; v != nil {
		b.WriteString(" ")
		b.WriteString(describe(v))
	} else {
		b.WriteString(" <nil>")
	}
	if c.Type == ChangeAttribute {
		fmt.Fprintf(&b, " %s=%q", c.Payload.Name, c.Payload.Value)
	}
	if p := c.Payload.ParentVNode; p != nil {
		b.WriteString(" in ")
		b.WriteString(describe(p))
	}
	return b.String()
}

// String renders one change per line.
func (cs ChangeSet) String() string {
	var b strings.Builder
	for i, c := range cs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Count returns the number of changes matching typ and action.
func (cs ChangeSet) Count(typ ChangeType, action Action) int {
	n := 0
	for _, c := range cs {
		if c.Type == typ && c.Action == action {
			n++
		}
	}
	return n
}

func describe(v *VNode) string {
	switch v.Kind {
	case KindText:
		text := v.Text
		if len(text) > 24 {
			text = text[:21] + "..."
		}
		return fmt.Sprintf("#text(%q)", text)
	case KindElement:
		return "<" + v.Tag + ">"
	case KindComponent:
		return "component"
	default:
		return v.Kind.String()
	}
}
