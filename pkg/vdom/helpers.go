package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Walk visits v and its descendants in document order, descending through
// component ASTs. Returning false from fn skips the node's subtree.
func Walk(v *VNode, fn func(*VNode) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	switch v.Kind {
	case KindComponent:
		Walk(v.AST, fn)
	case KindElement:
		for _, child := range v.Children {
			Walk(child, fn)
		}
	}
}

// CountNodes returns the number of text and element nodes under v,
// looking through components.
func CountNodes(v *VNode) int {
	count := 0
	Walk(v, func(n *VNode) bool {
		if n.Kind != KindComponent {
			count++
		}
		return true
	})
	return count
}
