package vdom

import (
	"strings"

	"golang.org/x/net/html"
)

// FromHTML converts a live HTML tree into a detached virtual tree. Document
// nodes convert to their <html> element. Comments, doctypes and
// whitespace-only text are dropped, matching what hydration considers
// significant. The result carries no NodeRefs.
func FromHTML(n *html.Node) *VNode {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				return FromHTML(c)
			}
		}
		return nil

	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return Text(n.Data)

	case html.ElementNode:
		v := &VNode{
			Kind:     KindElement,
			Tag:      n.Data,
			Props:    make(Props, len(n.Attr)),
			Children: make([]*VNode, 0),
		}
		for _, a := range n.Attr {
			if a.Namespace != "" {
				continue
			}
			if IsBooleanAttr(a.Key) {
				v.Props[a.Key] = true
				continue
			}
			v.Props[a.Key] = a.Val
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := FromHTML(c); child != nil {
				v.Children = append(v.Children, child)
			}
		}
		return v
	}
	return nil
}
