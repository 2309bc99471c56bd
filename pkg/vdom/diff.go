package vdom

import (
	"golang.org/x/net/html"
)

// DiffProps is the input of Diff. All fields are optional.
type DiffProps struct {
	// Node is a live node to hydrate against.
	Node *html.Node

	// VNode is the current virtual node.
	VNode *VNode

	// PreviousVNode is the virtual node rendered by the previous pass.
	PreviousVNode *VNode

	// ParentVNode is the virtual parent of VNode/PreviousVNode.
	ParentVNode *VNode
}

// Diff computes the ordered changes that bring the live document in line
// with props.VNode. It has no side effects on the live document; it does
// carry NodeRefs and lifecycle records from the previous tree onto the
// current one, so the previous tree must not be reused after the result is
// applied.
//
// Input that matches no reconciliation case yields an empty ChangeSet.
func Diff(props DiffProps) ChangeSet {
	var changes ChangeSet
	diff(props, &changes)
	return changes
}

func diff(props DiffProps, changes *ChangeSet) {
	vNode := Unwrap(props.VNode)
	previousVNode := Unwrap(props.PreviousVNode)
	parentVNode := Unwrap(props.ParentVNode)

	switch Classify(props) {
	case CaseHydrate:
		if parentVNode == nil {
			parentVNode = liveParent(props.Node)
		}
		hydrate(props.Node, vNode, parentVNode, changes)

	case CaseUpdate:
		update(props.VNode, props.PreviousVNode, parentVNode, changes)

	case CaseRender:
		render(parentVNode, vNode, changes)

	case CaseDelete:
		switch previousVNode.Kind {
		case KindText:
			*changes = append(*changes, Change{
				Type:   ChangeText,
				Action: ActionDelete,
				Payload: Payload{
					VNode: previousVNode,
				},
			})
		case KindElement:
			// The element payload carries the current (absent) vNode, not
			// previousVNode. Applying it fails at the document boundary.
			*changes = append(*changes, Change{
				Type:   ChangeElement,
				Action: ActionDelete,
				Payload: Payload{
					ParentVNode: parentVNode,
					VNode:       props.VNode,
				},
			})
		}
	}
}

// update reconciles next against prev. Both may be component nodes and
// unwrap to non-nil nodes. A node produced by a different component is a new
// instance and replaces the previous one even when the tags agree.
func update(nextNode, prevNode, parent *VNode, changes *ChangeSet) {
	next, prev := Unwrap(nextNode), Unwrap(prevNode)
	if next == prev {
		return
	}

	if sameInstance(nextNode, prevNode) && next.Kind == prev.Kind &&
		(next.Kind == KindText || next.Tag == prev.Tag) {
		next.NodeRef = prev.NodeRef
		if next.Kind == KindText {
			if next.Text != prev.Text {
				*changes = append(*changes, Change{
					Type:    ChangeText,
					Action:  ActionUpdate,
					Payload: Payload{VNode: next},
				})
			}
			return
		}

		// The mounted instance keeps its lifecycle record so mount hooks do
		// not run twice and registered teardowns survive the re-render.
		if prev.Hooks != nil {
			next.Hooks = prev.Hooks
		}
		diffAttributes(next, EffectiveAttrs(prev), EffectiveAttrs(next), changes)
		updateChildren(next, prev, changes)
		return
	}

	// Kind, tag or component changed: create the new node, swap it in for
	// the previous live node, then render its children into it.
	if parent == nil {
		parent = liveParent(prev.NodeRef)
	}
	create(parent, next, changes)
	*changes = append(*changes, Change{
		Type:   ChangeElement,
		Action: ActionUpdate,
		Payload: Payload{
			ParentVNode:   parent,
			Node:          prev.NodeRef,
			VNode:         next,
			PreviousVNode: prev,
		},
	})
	renderChildren(next, changes)
}

// sameInstance reports whether next and prev come from the same chain of
// component functions.
func sameInstance(next, prev *VNode) bool {
	for next != nil && prev != nil && (next.Kind == KindComponent || prev.Kind == KindComponent) {
		if next.Kind != prev.Kind || !SameComponent(next.Fn, prev.Fn) {
			return false
		}
		next, prev = next.AST, prev.AST
	}
	return true
}

// updateChildren pairs children by position. Children are paired before
// unwrapping so component identity is still visible to update.
func updateChildren(next, prev *VNode, changes *ChangeSet) {
	nextChildren := renderedChildren(next)
	prevChildren := renderedChildren(prev)

	maxLen := len(prevChildren)
	if len(nextChildren) > maxLen {
		maxLen = len(nextChildren)
	}

	for i := 0; i < maxLen; i++ {
		var nextChild, prevChild *VNode
		if i < len(nextChildren) {
			nextChild = nextChildren[i]
		}
		if i < len(prevChildren) {
			prevChild = prevChildren[i]
		}

		switch {
		case nextChild != nil && prevChild != nil:
			update(nextChild, prevChild, next, changes)
		case nextChild != nil:
			render(next, Unwrap(nextChild), changes)
		default:
			remove(next, Unwrap(prevChild), changes)
		}
	}
}

// renderedChildren returns the children of v that unwrap to a node, without
// unwrapping them.
func renderedChildren(v *VNode) []*VNode {
	if v == nil || v.Kind != KindElement || len(v.Children) == 0 {
		return nil
	}
	out := make([]*VNode, 0, len(v.Children))
	for _, child := range v.Children {
		if Unwrap(child) != nil {
			out = append(out, child)
		}
	}
	return out
}

// render emits the changes that mount v as the last child of parent. An
// element is attached before its children are rendered into it, so every
// attach, and the mount hooks it runs, happens inside the live tree.
func render(parent, v *VNode, changes *ChangeSet) {
	switch v.Kind {
	case KindText:
		*changes = append(*changes, Change{
			Type:   ChangeText,
			Action: ActionCreate,
			Payload: Payload{
				ParentVNode: parent,
				VNode:       v,
			},
		})
	case KindElement:
		create(parent, v, changes)
		*changes = append(*changes, Change{
			Type:   ChangeElement,
			Action: ActionAttach,
			Payload: Payload{
				ParentVNode: parent,
				VNode:       v,
			},
		})
		renderChildren(v, changes)
	}
}

// create emits the changes that create v with its attributes, detached.
// parent is only used to choose the namespace of a created element.
func create(parent, v *VNode, changes *ChangeSet) {
	if v.Kind == KindText {
		*changes = append(*changes, Change{
			Type:    ChangeText,
			Action:  ActionCreate,
			Payload: Payload{VNode: v},
		})
		return
	}

	*changes = append(*changes, Change{
		Type:   ChangeElement,
		Action: ActionCreate,
		Payload: Payload{
			ParentVNode: parent,
			VNode:       v,
		},
	})
	diffAttributes(v, nil, EffectiveAttrs(v), changes)
}

func renderChildren(v *VNode, changes *ChangeSet) {
	if v.Kind != KindElement {
		return
	}
	for _, child := range unwrapChildren(v) {
		render(v, child, changes)
	}
}

// remove emits a well-formed delete for a previous child of parent.
func remove(parent, prev *VNode, changes *ChangeSet) {
	switch prev.Kind {
	case KindText:
		*changes = append(*changes, Change{
			Type:    ChangeText,
			Action:  ActionDelete,
			Payload: Payload{VNode: prev},
		})
	case KindElement:
		*changes = append(*changes, Change{
			Type:   ChangeElement,
			Action: ActionDelete,
			Payload: Payload{
				ParentVNode: parent,
				VNode:       prev,
			},
		})
	}
}

// diffAttributes emits attribute changes turning from into to on v's live
// node. Keys are visited in lexical order so output is deterministic.
func diffAttributes(v *VNode, from, to map[string]string, changes *ChangeSet) {
	for _, name := range SortedKeys(from) {
		if _, ok := to[name]; !ok {
			*changes = append(*changes, Change{
				Type:    ChangeAttribute,
				Action:  ActionDelete,
				Payload: Payload{VNode: v, Name: name},
			})
		}
	}
	for _, name := range SortedKeys(to) {
		value := to[name]
		old, ok := from[name]
		switch {
		case !ok:
			*changes = append(*changes, Change{
				Type:    ChangeAttribute,
				Action:  ActionCreate,
				Payload: Payload{VNode: v, Name: name, Value: value},
			})
		case old != value:
			*changes = append(*changes, Change{
				Type:    ChangeAttribute,
				Action:  ActionUpdate,
				Payload: Payload{VNode: v, Name: name, Value: value},
			})
		}
	}
}

// liveParent wraps the live parent of n in a virtual element so it can serve
// as a ParentVNode. It returns nil when n is detached.
func liveParent(n *html.Node) *VNode {
	if n == nil || n.Parent == nil {
		return nil
	}
	return &VNode{
		Kind:    KindElement,
		Tag:     n.Parent.Data,
		NodeRef: n.Parent,
	}
}
