package vdom

// Unwrap resolves component nodes to the text or element node they render,
// following AST links until a non-component (or nil) is reached.
//
// Unwrap never modifies the tree; the result aliases a node inside it.
// Unwrapping a text or element node returns it unchanged, so Unwrap is
// idempotent.
func Unwrap(v *VNode) *VNode {
	if v != nil && v.Kind == KindComponent {
		return Unwrap(v.AST)
	}
	return v
}

// unwrapChildren returns the unwrapped, non-nil children of an element.
func unwrapChildren(v *VNode) []*VNode {
	if v == nil || v.Kind != KindElement || len(v.Children) == 0 {
		return nil
	}
	out := make([]*VNode, 0, len(v.Children))
	for _, child := range v.Children {
		if c := Unwrap(child); c != nil {
			out = append(out, c)
		}
	}
	return out
}
