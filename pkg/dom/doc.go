// Package dom provides the live document that virtual trees are reconciled
// against.
//
// The document is an in-memory HTML node tree built on golang.org/x/net/html.
// It mirrors the subset of the browser DOM API that the reconciler needs:
// node creation (namespace aware), child insertion, removal and replacement,
// attribute and character-data mutation, and SVG ownership introspection.
//
// # Usage
//
//	doc := dom.New()
//	root, err := dom.Parse(strings.NewReader(serverHTML))
//	if err != nil {
//	    return err
//	}
//	el := doc.CreateElement("div")
//	if err := doc.AppendChild(dom.Body(root), el); err != nil {
//	    return err
//	}
//
// Like the browser, AppendChild and ReplaceChild move a node that already
// has a parent instead of failing.
package dom
