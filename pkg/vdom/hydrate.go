package vdom

import (
	"strings"

	"golang.org/x/net/html"
)

// hydrate adopts the live node for v and emits changes only where the
// server markup disagrees with the virtual tree.
func hydrate(node *html.Node, v, parent *VNode, changes *ChangeSet) {
	switch v.Kind {
	case KindText:
		if node.Type == html.TextNode {
			v.NodeRef = node
			if node.Data != v.Text {
				*changes = append(*changes, Change{
					Type:    ChangeText,
					Action:  ActionUpdate,
					Payload: Payload{VNode: v},
				})
			}
			return
		}
		// Markup has a non-text node where text is expected.
		*changes = append(*changes,
			Change{
				Type:    ChangeText,
				Action:  ActionCreate,
				Payload: Payload{VNode: v},
			},
			Change{
				Type:   ChangeElement,
				Action: ActionUpdate,
				Payload: Payload{
					ParentVNode: parent,
					Node:        node,
					VNode:       v,
				},
			},
		)

	case KindElement:
		v.NodeRef = node
		if node.Type != html.ElementNode || !sameTag(node.Data, v.Tag) {
			// Swap in a fresh element and render the subtree into it.
			*changes = append(*changes, Change{
				Type:    ChangeElement,
				Action:  ActionReplace,
				Payload: Payload{VNode: v},
			})
			diffAttributes(v, nil, EffectiveAttrs(v), changes)
			for _, child := range unwrapChildren(v) {
				render(v, child, changes)
			}
		} else {
			diffAttributes(v, liveAttrs(node), EffectiveAttrs(v), changes)
			hydrateChildren(node, v, changes)
		}
		if hasMountHooks(v) {
			*changes = append(*changes, Change{
				Type:   ChangeElement,
				Action: ActionMount,
				Payload: Payload{
					ParentVNode: parent,
					VNode:       v,
				},
			})
		}
	}
}

// hydrateChildren pairs the significant live children of node with the
// virtual children of v by position. Missing live children are rendered and
// surplus ones are deleted.
func hydrateChildren(node *html.Node, v *VNode, changes *ChangeSet) {
	live := significantChildren(node)
	virtual := unwrapChildren(v)

	maxLen := len(live)
	if len(virtual) > maxLen {
		maxLen = len(virtual)
	}

	for i := 0; i < maxLen; i++ {
		switch {
		case i < len(live) && i < len(virtual):
			hydrate(live[i], virtual[i], v, changes)
		case i < len(virtual):
			render(v, virtual[i], changes)
		default:
			remove(v, orphan(live[i]), changes)
		}
	}
}

// significantChildren returns the children of n that take part in
// hydration. Comments and whitespace-only text are formatting artefacts of
// server markup and are skipped.
func significantChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			out = append(out, c)
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

// liveAttrs returns the plain (non-namespaced) attributes of n.
func liveAttrs(n *html.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		if a.Namespace == "" {
			attrs[a.Key] = a.Val
		}
	}
	return attrs
}

// orphan wraps a live node that has no virtual counterpart so it can be
// deleted through the regular appliers.
func orphan(n *html.Node) *VNode {
	if n.Type == html.TextNode {
		return &VNode{Kind: KindText, Text: n.Data, NodeRef: n}
	}
	return &VNode{Kind: KindElement, Tag: n.Data, NodeRef: n}
}

// sameTag compares tag names. The HTML parser lowercases tags but keeps the
// camel case of SVG names such as foreignObject.
func sameTag(live, tag string) bool {
	return live == tag || strings.EqualFold(live, tag)
}
