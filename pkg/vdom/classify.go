package vdom

import "golang.org/x/net/html"

// Case is the reconciliation branch selected for a diff input.
type Case uint8

const (
	CaseNone Case = iota
	CaseHydrate
	CaseUpdate
	CaseRender
	CaseDelete
)

// String returns the string representation of the Case.
func (c Case) String() string {
	switch c {
	case CaseHydrate:
		return "hydrate"
	case CaseUpdate:
		return "update"
	case CaseRender:
		return "render"
	case CaseDelete:
		return "delete"
	default:
		return "none"
	}
}

// ToBeHydrated reports first-paint reconciliation against existing markup:
// a live node and a virtual node are given, with no previous virtual node.
func ToBeHydrated(node *html.Node, vNode, previousVNode *VNode) bool {
	return node != nil && vNode != nil && previousVNode == nil
}

// ToBeUpdated reports a steady-state re-render: both the current and the
// previous virtual node exist.
func ToBeUpdated(vNode, previousVNode *VNode) bool {
	return vNode != nil && previousVNode != nil
}

// ToBeRendered reports the first mount of a new subtree under a live parent.
func ToBeRendered(parentVNode, vNode, previousVNode *VNode) bool {
	return parentVNode != nil && parentVNode.NodeRef != nil &&
		vNode != nil && previousVNode == nil
}

// ToBeDeleted reports the removal of a previously rendered node.
func ToBeDeleted(parentVNode, vNode, previousVNode *VNode) bool {
	return parentVNode != nil && vNode == nil && previousVNode != nil
}

// Classify returns the branch Diff takes for props. The predicates are
// evaluated on unwrapped virtual nodes in priority order
// hydrate, update, render, delete; the first match wins.
func Classify(props DiffProps) Case {
	vNode := Unwrap(props.VNode)
	previousVNode := Unwrap(props.PreviousVNode)
	parentVNode := Unwrap(props.ParentVNode)

	switch {
	case ToBeHydrated(props.Node, vNode, previousVNode):
		return CaseHydrate
	case ToBeUpdated(vNode, previousVNode):
		return CaseUpdate
	case ToBeRendered(parentVNode, vNode, previousVNode):
		return CaseRender
	case ToBeDeleted(parentVNode, vNode, previousVNode):
		return CaseDelete
	default:
		return CaseNone
	}
}
